// Package event publishes registry lifecycle events for downstream
// consumers. Publishing is best effort: the registry never fails an
// operation because a broker is unavailable.
package event

import "time"

type CustomerEvent struct {
	PersonalNumber string    `json:"personalNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Timestamp      time.Time `json:"timestamp"`
}

type AccountEvent struct {
	PersonalNumber string    `json:"personalNumber"`
	AccountNumber  int       `json:"accountNumber"`
	AccountType    string    `json:"accountType"`
	Timestamp      time.Time `json:"timestamp"`
}
