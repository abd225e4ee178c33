package engine

import (
	"errors"
	"fmt"
)

// Every error here is recoverable: it is reported to the caller (human UI or
// bot driver), which retries with different parameters or gives up. The
// engine never panics on them.
var (
	ErrAlreadyOwned      = errors.New("property already owned")
	ErrNotOwner          = errors.New("player does not own this property")
	ErrNotPurchasable    = errors.New("space cannot be owned")
	ErrAlreadyMortgaged  = errors.New("property already mortgaged")
	ErrNotMortgaged      = errors.New("property is not mortgaged")
	ErrHasBuildings      = errors.New("property has buildings")
	ErrStaleProposal     = errors.New("proposal no longer valid")
	ErrTurnInProgress    = errors.New("turn has an outstanding decision")
	ErrNotInJail         = errors.New("player is not in jail")
	ErrNoJailCard        = errors.New("player holds no get-out-of-jail card")
	ErrGameOver          = errors.New("game is over")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownProposal   = errors.New("unknown proposal")
	ErrNoPendingDecision = errors.New("no pending decision")
	ErrAlreadyRolled     = errors.New("dice already rolled this turn")
	ErrMustRollFirst     = errors.New("dice have not been rolled yet")
)

// BuildDenial is the specific reason a build was refused.
type BuildDenial string

const (
	DenyNotStreet      BuildDenial = "not-a-street"
	DenyNotOwner       BuildDenial = "not-owner"
	DenyNoMonopoly     BuildDenial = "no-monopoly"
	DenyGroupMortgaged BuildDenial = "group-mortgaged"
	DenyNonUniform     BuildDenial = "non-uniform"
	DenyHotelLimit     BuildDenial = "hotel-limit"
	DenyNoFunds        BuildDenial = "insufficient-funds"
)

// CannotBuildError carries the reason construction was refused so callers can
// surface it instead of a generic failure.
type CannotBuildError struct {
	Reason BuildDenial
}

func (e *CannotBuildError) Error() string {
	return fmt.Sprintf("cannot build: %s", e.Reason)
}

// CannotSellError reports a refused building sale (most-built-first rule, or
// nothing to sell).
type CannotSellError struct {
	Reason string
}

func (e *CannotSellError) Error() string {
	return fmt.Sprintf("cannot sell building: %s", e.Reason)
}
