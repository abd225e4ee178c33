// Package ledger holds every player's cash balance. All money movement in the
// game goes through it, which is what enforces the no-double-spend invariant:
// nothing else is allowed to touch a balance.
package ledger

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// Bank is the sink destination. Money paid to the bank leaves circulation and
// is never credited anywhere.
const Bank = "bank"

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountExists     = errors.New("account already exists")
	ErrUnknownAccount    = errors.New("unknown account")
)

type EntryKind string

const (
	// EntryTransfer is a player-to-player payment.
	EntryTransfer EntryKind = "transfer"
	// EntrySink is a payment to the bank; the money leaves circulation.
	EntrySink EntryKind = "sink"
	// EntryDeposit is a bank payout into circulation.
	EntryDeposit EntryKind = "deposit"
)

// Entry is one line of the audit trail. Sink payments are a distinct kind so
// the trail shows where money left circulation.
type Entry struct {
	Kind   EntryKind `json:"kind"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to,omitempty"`
	Amount int       `json:"amount"`
}

type Ledger struct {
	accounts map[string]int
	journal  []Entry
}

func New() *Ledger {
	return &Ledger{accounts: make(map[string]int)}
}

// Open creates an account with the given starting balance.
func (l *Ledger) Open(player string, starting int) error {
	if starting < 0 {
		return ErrInvalidAmount
	}
	if _, ok := l.accounts[player]; ok {
		return ErrAccountExists
	}
	l.accounts[player] = starting
	l.journal = append(l.journal, Entry{Kind: EntryDeposit, To: player, Amount: starting})
	return nil
}

// Close removes an account, returning whatever balance was left in it. Used
// when a player goes bankrupt; the caller decides where the remainder goes.
func (l *Ledger) Close(player string) (int, error) {
	bal, ok := l.accounts[player]
	if !ok {
		return 0, ErrUnknownAccount
	}
	delete(l.accounts, player)
	return bal, nil
}

// Balance returns the current balance, 0 for unknown accounts.
func (l *Ledger) Balance(player string) int {
	return l.accounts[player]
}

// Transfer moves amount from one account to another. It either fully succeeds
// or leaves both balances untouched. A transfer to Bank debits the payer and
// credits nobody.
func (l *Ledger) Transfer(from, to string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if _, ok := l.accounts[from]; !ok {
		return ErrUnknownAccount
	}
	if l.accounts[from] < amount {
		return ErrInsufficientFunds
	}
	if to == Bank {
		l.accounts[from] -= amount
		l.journal = append(l.journal, Entry{Kind: EntrySink, From: from, Amount: amount})
		log.WithFields(log.Fields{"from": from, "amount": amount}).Debug("paid to bank")
		return nil
	}
	if _, ok := l.accounts[to]; !ok {
		return ErrUnknownAccount
	}
	l.accounts[from] -= amount
	l.accounts[to] += amount
	l.journal = append(l.journal, Entry{Kind: EntryTransfer, From: from, To: to, Amount: amount})
	log.WithFields(log.Fields{"from": from, "to": to, "amount": amount}).Debug("transfer")
	return nil
}

// Deposit credits amount from the bank's unlimited reserve.
func (l *Ledger) Deposit(player string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if _, ok := l.accounts[player]; !ok {
		return ErrUnknownAccount
	}
	l.accounts[player] += amount
	l.journal = append(l.journal, Entry{Kind: EntryDeposit, To: player, Amount: amount})
	log.WithFields(log.Fields{"to": player, "amount": amount}).Debug("deposit")
	return nil
}

// Journal returns a copy of the audit trail.
func (l *Ledger) Journal() []Entry {
	out := make([]Entry, len(l.journal))
	copy(out, l.journal)
	return out
}

// InCirculation is the sum of all open balances.
func (l *Ledger) InCirculation() int {
	total := 0
	for _, bal := range l.accounts {
		total += bal
	}
	return total
}
