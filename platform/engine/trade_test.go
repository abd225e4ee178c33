package engine

import (
	"errors"
	"testing"

	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

func TestProposeValidations(t *testing.T) {
	g := testGame(t, DefaultConfig())
	own(t, g.book, "a", 1)
	own(t, g.book, "b", 3)

	if _, err := g.ProposeTrade("a", "a", nil, nil, 0, 0); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("self trade: %v", err)
	}
	if _, err := g.ProposeTrade("a", "b", []int{3}, nil, 0, 0); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("offering the counterparty's street: %v", err)
	}
	if _, err := g.ProposeTrade("a", "b", nil, []int{1}, 0, 0); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("requesting own street: %v", err)
	}
	if _, err := g.ProposeTrade("a", "b", []int{1}, nil, 2000, 0); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("cash leg beyond balance: %v", err)
	}

	g.book.holdings[1].mortgaged = true
	if _, err := g.ProposeTrade("a", "b", []int{1}, nil, 0, 0); !errors.Is(err, ErrAlreadyMortgaged) {
		t.Fatalf("mortgaged offer: %v", err)
	}
}

func TestTradeExecutesAtomically(t *testing.T) {
	g := testGame(t, DefaultConfig())
	own(t, g.book, "a", 1)
	own(t, g.book, "b", 3)

	pr, err := g.ProposeTrade("a", "b", []int{1}, []int{3}, 50, 0)
	if err != nil {
		t.Fatalf("ProposeTrade: %v", err)
	}
	if err := g.AcceptTrade("a", pr.ID); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("proposer accepting own offer: %v", err)
	}
	if err := g.AcceptTrade("b", pr.ID); err != nil {
		t.Fatalf("AcceptTrade: %v", err)
	}

	if g.book.Owner(1) != "b" || g.book.Owner(3) != "a" {
		t.Fatalf("properties did not swap: %q %q", g.book.Owner(1), g.book.Owner(3))
	}
	if g.Balance("a") != 1450 || g.Balance("b") != 1550 {
		t.Fatalf("cash leg wrong: a=%d b=%d", g.Balance("a"), g.Balance("b"))
	}
	if pr.Status != ProposalAccepted {
		t.Fatalf("status %q", pr.Status)
	}
	if err := g.AcceptTrade("b", pr.ID); !errors.Is(err, ErrStaleProposal) {
		t.Fatalf("accepting a terminal proposal: %v", err)
	}
}

// Acceptance re-validates against current state: the counterparty mortgaging
// the requested street after the offer makes it stale, with nothing applied.
func TestAcceptAfterDriftIsStale(t *testing.T) {
	g := testGame(t, DefaultConfig())
	own(t, g.book, "a", 1)
	own(t, g.book, "b", 3)

	pr, err := g.ProposeTrade("a", "b", []int{1}, []int{3}, 0, 50)
	if err != nil {
		t.Fatalf("ProposeTrade: %v", err)
	}
	if err := g.Mortgage("b", 3); err != nil {
		t.Fatalf("Mortgage: %v", err)
	}

	if err := g.AcceptTrade("b", pr.ID); !errors.Is(err, ErrStaleProposal) {
		t.Fatalf("expected stale, got %v", err)
	}
	if pr.Status != ProposalRejected {
		t.Fatalf("status %q", pr.Status)
	}
	if g.book.Owner(1) != "a" || g.book.Owner(3) != "b" {
		t.Fatalf("stale acceptance must not move anything")
	}
}

func TestMortgagedTradeWithFlag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowMortgagedTrade = true
	g := testGame(t, cfg)
	own(t, g.book, "a", 1)
	own(t, g.book, "b", 3)
	g.book.holdings[3].mortgaged = true

	pr, err := g.ProposeTrade("a", "b", []int{1}, []int{3}, 0, 0)
	if err != nil {
		t.Fatalf("ProposeTrade with flag: %v", err)
	}
	if err := g.AcceptTrade("b", pr.ID); err != nil {
		t.Fatalf("AcceptTrade: %v", err)
	}
	if g.book.Owner(3) != "a" || !g.book.Mortgaged(3) {
		t.Fatalf("mortgage must carry over to the receiver")
	}
}

func TestRejectAndCancel(t *testing.T) {
	g := testGame(t, DefaultConfig())
	own(t, g.book, "a", 1)

	pr, _ := g.ProposeTrade("a", "b", []int{1}, nil, 0, 10)
	if err := g.RejectTrade("a", pr.ID); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("proposer rejecting: %v", err)
	}
	if err := g.RejectTrade("b", pr.ID); err != nil {
		t.Fatalf("RejectTrade: %v", err)
	}
	if pr.Status != ProposalRejected || g.book.Owner(1) != "a" {
		t.Fatalf("reject must be a pure status change")
	}

	pr2, _ := g.ProposeTrade("a", "b", []int{1}, nil, 0, 10)
	if err := g.CancelTrade("b", pr2.ID); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("counterparty cancelling: %v", err)
	}
	if err := g.CancelTrade("a", pr2.ID); err != nil {
		t.Fatalf("CancelTrade: %v", err)
	}
	if pr2.Status != ProposalCancelled {
		t.Fatalf("status %q", pr2.Status)
	}

	if _, err := g.Proposal("missing"); !errors.Is(err, ErrUnknownProposal) {
		t.Fatalf("unknown proposal: %v", err)
	}
}

// A trade cannot land in the middle of a space resolution involving one of
// its parties.
func TestAcceptDuringPendingDecision(t *testing.T) {
	g := testGame(t, DefaultConfig(), [2]int{2, 3})
	own(t, g.book, "b", 3)

	pr, err := g.ProposeTrade("b", "a", []int{3}, nil, 0, 100)
	if err != nil {
		t.Fatalf("ProposeTrade: %v", err)
	}

	// Alice rolls onto an unowned railroad; her buy decision is outstanding.
	if _, err := g.Roll("a"); err != nil {
		t.Fatalf("Roll: %v", err)
	}
	if err := g.AcceptTrade("a", pr.ID); !errors.Is(err, ErrTurnInProgress) {
		t.Fatalf("expected TurnInProgress, got %v", err)
	}

	if err := g.Decline("a"); err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if err := g.AcceptTrade("a", pr.ID); err != nil {
		t.Fatalf("accept after resolution: %v", err)
	}
	if g.book.Owner(3) != "a" {
		t.Fatalf("trade did not execute")
	}
}
