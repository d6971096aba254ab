// Package numbering allocates contract codes and receipt numbers.
package numbering

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// counterState is the persisted shape of the contract sequence counter.
type counterState struct {
	LastNumber int `json:"last_number"`
}

// Allocator issues document numbers. Contract codes carry a durable,
// monotonic sequence read from and written back to a small JSON file before
// the code is returned; a number handed out is never reused, even when the
// document generation it was issued for fails later. Receipt numbers are
// display labels with a random three-digit suffix and carry no uniqueness
// guarantee.
//
// The counter file is single-writer state. Concurrent processes would race
// on the read-increment-write cycle; this tool runs one operator action at a
// time.
type Allocator struct {
	counterPath string
	rand        *rand.Rand
}

// New returns an allocator backed by the counter file at counterPath. The
// file is created with value 0 on first allocation.
func New(counterPath string) *Allocator {
	return &Allocator{
		counterPath: counterPath,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the random source used for receipt suffixes. Tests
// inject a seeded source for deterministic numbers.
func (a *Allocator) WithRand(r *rand.Rand) *Allocator {
	a.rand = r
	return a
}

// NextContractCode reads the persisted counter, increments it, writes it
// back and returns a code of the form {customer}_{YYYYMMDD}_{seq:03d}.
func (a *Allocator) NextContractCode(customer string, date time.Time) (string, error) {
	last, err := a.readCounter()
	if err != nil {
		return "", err
	}

	next := last + 1
	if err := a.writeCounter(next); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s_%s_%03d", customer, date.Format("20060102"), next), nil
}

// NextReceiptNumber builds RG{YYYYMMDD}-{random 100..999}. Collisions within
// a day are possible (~1/900 per pair) and accepted: the number labels the
// printed receipt, it is not a primary key.
func (a *Allocator) NextReceiptNumber(date time.Time) string {
	suffix := 100 + a.rand.Intn(900)
	return fmt.Sprintf("RG%s-%d", date.Format("20060102"), suffix)
}

func (a *Allocator) readCounter() (int, error) {
	data, err := os.ReadFile(a.counterPath)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter file: %w", err)
	}

	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, fmt.Errorf("counter file %s is corrupt: %w", a.counterPath, err)
	}
	return state.LastNumber, nil
}

func (a *Allocator) writeCounter(value int) error {
	data, err := json.Marshal(counterState{LastNumber: value})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.counterPath), 0o755); err != nil {
		return fmt.Errorf("create counter directory: %w", err)
	}
	if err := os.WriteFile(a.counterPath, data, 0o644); err != nil {
		return fmt.Errorf("write counter file: %w", err)
	}
	return nil
}
