// Package storage persists the whole bank as a JSON snapshot and exports
// transaction logs as text. It knows nothing about ledger rules; the bank
// package converts to and from the record types here.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const fileStamp = "060102-150405"

type Meta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is the full persisted state: the account-number counter first,
// then the registry graph. Loading restores the counter before anything
// else so numbering resumes exactly where it stopped.
type Snapshot struct {
	Meta              Meta             `json:"_meta"`
	LastAccountNumber int              `json:"lastAccountNumber"`
	Customers         []CustomerRecord `json:"customers"`
}

type CustomerRecord struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	PersonalNumber string          `json:"personalNumber"`
	Accounts       []AccountRecord `json:"accounts"`
}

// AccountRecord carries both variants; the Type label decides which policy
// fields apply. Decimals travel as strings to keep them exact.
type AccountRecord struct {
	Number            int      `json:"number"`
	Type              string   `json:"type"`
	Balance           string   `json:"balance"`
	InterestRate      string   `json:"interestRate"`
	WithdrawRate      string   `json:"withdrawRate,omitempty"`
	HasMadeWithdrawal bool     `json:"hasMadeWithdrawal,omitempty"`
	CreditLimit       string   `json:"creditLimit,omitempty"`
	DebtInterest      string   `json:"debtInterest,omitempty"`
	Transactions      []string `json:"transactions"`
}

// FileName returns the timestamped default snapshot name, e.g.
// "bank-260827-143015.json".
func FileName(t time.Time) string {
	return fmt.Sprintf("bank-%s.json", t.Format(fileStamp))
}

// Load reads and decodes a snapshot file.
func Load(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	return snap, nil
}

// Save writes the snapshot atomically: encode to a temp file, then rename
// over the target, so a crash mid-write never corrupts an existing file.
func Save(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Version = 1
	snap.Meta.Timestamp = time.Now()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
