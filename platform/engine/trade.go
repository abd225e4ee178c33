package engine

import (
	uuid "github.com/satori/go.uuid"

	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

type ProposalStatus string

const (
	ProposalPending   ProposalStatus = "pending"
	ProposalAccepted  ProposalStatus = "accepted"
	ProposalRejected  ProposalStatus = "rejected"
	ProposalCancelled ProposalStatus = "cancelled"
)

// Proposal is a trade offer: proposer gives Give and GiveCash, receives Take
// and TakeCash from the counterparty. Terminal once accepted, rejected or
// cancelled.
type Proposal struct {
	ID           string         `json:"id"`
	Proposer     string         `json:"proposer"`
	Counterparty string         `json:"counterparty"`
	Give         []int          `json:"give"`
	Take         []int          `json:"take"`
	GiveCash     int            `json:"giveCash"`
	TakeCash     int            `json:"takeCash"`
	Status       ProposalStatus `json:"status"`
}

// validateProposal checks a proposal against current state. It runs at
// proposal time (returning the specific failure) and again at acceptance,
// where any failure means the world drifted since the offer was made.
func (g *Game) validateProposal(pr *Proposal) error {
	if pr.GiveCash < 0 || pr.TakeCash < 0 {
		return ledger.ErrInvalidAmount
	}
	sides := []struct {
		player string
		props  []int
		cash   int
	}{
		{pr.Proposer, pr.Give, pr.GiveCash},
		{pr.Counterparty, pr.Take, pr.TakeCash},
	}
	for _, side := range sides {
		for _, pos := range side.props {
			if g.book.Owner(pos) != side.player {
				return ErrNotOwner
			}
			if g.book.Houses(pos) > 0 {
				return ErrHasBuildings
			}
			if !g.cfg.AllowMortgagedTrade && g.book.Mortgaged(pos) {
				return ErrAlreadyMortgaged
			}
		}
		if g.ledger.Balance(side.player) < side.cash {
			return ledger.ErrInsufficientFunds
		}
	}
	return nil
}

// ProposeTrade opens a proposal between two active players. Trades can be
// proposed outside the proposer's own turn.
func (g *Game) ProposeTrade(proposer, counterparty string, give, take []int, giveCash, takeCash int) (*Proposal, error) {
	if g.phase == GameOver {
		return nil, ErrGameOver
	}
	a, b := g.player(proposer), g.player(counterparty)
	if a == nil || b == nil || a.Bankrupt || b.Bankrupt || proposer == counterparty {
		return nil, ErrUnknownPlayer
	}
	pr := &Proposal{
		ID:           uuid.NewV4().String(),
		Proposer:     proposer,
		Counterparty: counterparty,
		Give:         append([]int(nil), give...),
		Take:         append([]int(nil), take...),
		GiveCash:     giveCash,
		TakeCash:     takeCash,
		Status:       ProposalPending,
	}
	if err := g.validateProposal(pr); err != nil {
		return nil, err
	}
	g.proposals[pr.ID] = pr
	g.record(proposer, "trade-proposed", pr.ID)
	return pr, nil
}

// AcceptTrade re-validates and executes the exchange atomically: all
// properties first, then the two cash legs. A proposal that no longer holds
// is rejected with ErrStaleProposal, never partially applied.
func (g *Game) AcceptTrade(counterparty, proposalID string) error {
	pr, err := g.pendingProposal(proposalID)
	if err != nil {
		return err
	}
	if pr.Counterparty != counterparty {
		return ErrNotYourTurn
	}
	// Trades must not interleave with an in-progress space resolution of
	// either party.
	if g.pending != nil && (g.pending.Player == pr.Proposer || g.pending.Player == pr.Counterparty) {
		return ErrTurnInProgress
	}
	if err := g.validateProposal(pr); err != nil {
		// The world moved since the offer: reject, never partially execute.
		pr.Status = ProposalRejected
		return ErrStaleProposal
	}

	for _, pos := range pr.Give {
		_ = g.book.TransferProperty(pos, pr.Proposer, pr.Counterparty)
	}
	for _, pos := range pr.Take {
		_ = g.book.TransferProperty(pos, pr.Counterparty, pr.Proposer)
	}
	// Validation checked both balances, so the legs cannot half-fail.
	if pr.GiveCash > 0 {
		_ = g.ledger.Transfer(pr.Proposer, pr.Counterparty, pr.GiveCash)
	}
	if pr.TakeCash > 0 {
		_ = g.ledger.Transfer(pr.Counterparty, pr.Proposer, pr.TakeCash)
	}
	pr.Status = ProposalAccepted
	g.record(counterparty, "trade-accepted", pr.ID)
	return nil
}

// RejectTrade marks a pending proposal rejected. No state changes.
func (g *Game) RejectTrade(counterparty, proposalID string) error {
	pr, err := g.pendingProposal(proposalID)
	if err != nil {
		return err
	}
	if pr.Counterparty != counterparty {
		return ErrNotYourTurn
	}
	pr.Status = ProposalRejected
	g.record(counterparty, "trade-rejected", pr.ID)
	return nil
}

// CancelTrade lets the proposer withdraw a pending proposal.
func (g *Game) CancelTrade(proposer, proposalID string) error {
	pr, err := g.pendingProposal(proposalID)
	if err != nil {
		return err
	}
	if pr.Proposer != proposer {
		return ErrNotYourTurn
	}
	pr.Status = ProposalCancelled
	g.record(proposer, "trade-cancelled", pr.ID)
	return nil
}

// Proposal returns a trade by id.
func (g *Game) Proposal(id string) (*Proposal, error) {
	pr, ok := g.proposals[id]
	if !ok {
		return nil, ErrUnknownProposal
	}
	return pr, nil
}

func (g *Game) pendingProposal(id string) (*Proposal, error) {
	pr, ok := g.proposals[id]
	if !ok {
		return nil, ErrUnknownProposal
	}
	if pr.Status != ProposalPending {
		return nil, ErrStaleProposal
	}
	return pr, nil
}
