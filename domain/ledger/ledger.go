// Package ledger tracks registered users and their cumulative traded
// notional, split by the role they played in each trade (maker or taker).
//
// The ledger is dependency-free and single-writer: all mutation happens
// under the engine's write lock.
package ledger

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrDuplicateUser is returned when registering an id that already exists.
	ErrDuplicateUser = errors.New("user already registered")
	// ErrUnknownUser is returned when looking up an id that was never registered.
	ErrUnknownUser = errors.New("unknown user")
)

// User is a pure domain entity. Notional fields are mutated only by
// CreditTrade when a trade involving this user settles.
type User struct {
	ID            string
	MakerNotional int64
	TakerNotional int64
}

// Ledger owns all registered users, keyed by id. Users are never deleted.
type Ledger struct {
	users map[string]*User
}

func New() *Ledger {
	return &Ledger{users: make(map[string]*User)}
}

// Register adds a new user. Registering an existing id fails.
func (l *Ledger) Register(id string) error {
	if _, ok := l.users[id]; ok {
		return fmt.Errorf("register %q: %w", id, ErrDuplicateUser)
	}
	l.users[id] = &User{ID: id}
	return nil
}

func (l *Ledger) Exists(id string) bool {
	_, ok := l.users[id]
	return ok
}

func (l *Ledger) Lookup(id string) (*User, error) {
	u, ok := l.users[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, ErrUnknownUser)
	}
	return u, nil
}

// CreditTrade settles one trade: the maker and the taker each accumulate
// the full traded notional on their respective counters. There is no
// rollback path; a recorded trade is final.
//
// Both users must be registered. The matching algorithm only trades on
// behalf of registered users, so an unknown id here is a programming error.
func (l *Ledger) CreditTrade(makerID, takerID string, notional int64) {
	maker, ok := l.users[makerID]
	if !ok {
		panic(fmt.Sprintf("ledger: trade credited to unknown maker %q", makerID))
	}
	taker, ok := l.users[takerID]
	if !ok {
		panic(fmt.Sprintf("ledger: trade credited to unknown taker %q", takerID))
	}
	maker.MakerNotional += notional
	taker.TakerNotional += notional
}

// Users returns all registered users sorted by id ascending.
func (l *Ledger) Users() []*User {
	out := make([]*User, 0, len(l.users))
	for _, u := range l.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
