package account

// startAccountNumber is the value the counter holds before any account has
// been created; the first account therefore receives 1001.
const startAccountNumber = 1000

// Sequence is the process-wide account-number counter. It is owned by the
// registry and threaded explicitly into account construction; the registry's
// service layer serializes access to it.
type Sequence struct {
	last int
}

func NewSequence() *Sequence {
	return &Sequence{last: startAccountNumber}
}

// Next increments before reading, so numbers start one above the last
// assigned value.
func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Last reports the most recently assigned number (the value a snapshot must
// persist so numbering resumes exactly).
func (s *Sequence) Last() int {
	return s.last
}

// Reset rewinds or advances the counter to a persisted value.
func (s *Sequence) Reset(last int) {
	s.last = last
}
