package ledger

import (
	"errors"
	"testing"
)

func TestOpenDuplicate(t *testing.T) {
	l := New()
	if err := l.Open("alice", 1500); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := l.Open("alice", 1500); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestBalanceUnknownIsZero(t *testing.T) {
	l := New()
	if bal := l.Balance("nobody"); bal != 0 {
		t.Fatalf("expected 0, got %d", bal)
	}
}

func TestTransferAtomicity(t *testing.T) {
	l := New()
	l.Open("alice", 100)
	l.Open("bob", 0)

	if err := l.Transfer("alice", "bob", 150); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if l.Balance("alice") != 100 || l.Balance("bob") != 0 {
		t.Fatalf("failed transfer must not move money: alice=%d bob=%d", l.Balance("alice"), l.Balance("bob"))
	}

	if err := l.Transfer("alice", "bob", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := l.Transfer("alice", "bob", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	if err := l.Transfer("alice", "bob", 40); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if l.Balance("alice") != 60 || l.Balance("bob") != 40 {
		t.Fatalf("alice=%d bob=%d", l.Balance("alice"), l.Balance("bob"))
	}
}

func TestBankSinkRemovesMoney(t *testing.T) {
	l := New()
	l.Open("alice", 500)

	if err := l.Transfer("alice", Bank, 200); err != nil {
		t.Fatalf("Transfer to bank: %v", err)
	}
	if l.Balance("alice") != 300 {
		t.Fatalf("alice=%d", l.Balance("alice"))
	}
	if l.Balance(Bank) != 0 {
		t.Fatalf("bank must never hold a balance, got %d", l.Balance(Bank))
	}

	journal := l.Journal()
	last := journal[len(journal)-1]
	if last.Kind != EntrySink || last.From != "alice" || last.Amount != 200 {
		t.Fatalf("sink entry not recorded: %+v", last)
	}
}

// Money is conserved: the sum of balances changes only by deposits minus
// bank-sink payments.
func TestConservation(t *testing.T) {
	l := New()
	l.Open("a", 1500)
	l.Open("b", 1500)
	l.Open("c", 1500)

	l.Transfer("a", "b", 300)
	l.Transfer("b", "c", 120)
	l.Transfer("c", "a", 75)
	if l.InCirculation() != 4500 {
		t.Fatalf("transfers changed circulation: %d", l.InCirculation())
	}

	l.Deposit("a", 200)
	l.Transfer("b", Bank, 50)
	if got, want := l.InCirculation(), 4500+200-50; got != want {
		t.Fatalf("circulation %d, want %d", got, want)
	}

	deposits, sinks := 0, 0
	for _, e := range l.Journal() {
		switch e.Kind {
		case EntryDeposit:
			deposits += e.Amount
		case EntrySink:
			sinks += e.Amount
		}
	}
	if l.InCirculation() != deposits-sinks {
		t.Fatalf("journal does not balance: circulation=%d deposits=%d sinks=%d", l.InCirculation(), deposits, sinks)
	}
}

func TestCloseReturnsRemainder(t *testing.T) {
	l := New()
	l.Open("alice", 320)
	bal, err := l.Close("alice")
	if err != nil || bal != 320 {
		t.Fatalf("Close = %d, %v", bal, err)
	}
	if _, err := l.Close("alice"); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	if err := l.Deposit("alice", 10); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("deposit to closed account must fail, got %v", err)
	}
}
