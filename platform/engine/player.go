package engine

import (
	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
)

// Player is one seat's mutable state. Owned properties are not stored here;
// ownership lives in the Book and "what does this player own" is a query
// over it, so the two can never drift apart.
type Player struct {
	ID   string
	Name string

	Position  int
	InJail    bool
	JailTurns int
	Bankrupt  bool

	// Retained get-out-of-jail cards. They go back to their deck's discard
	// pile when spent, keeping the 16-card count invariant.
	JailCards []deck.Card
}

// Advance moves the player forward n spaces, wrapping at 40, and reports
// whether the move crossed start.
func (p *Player) Advance(n int) bool {
	old := p.Position
	p.Position = ((p.Position+n)%board.Size + board.Size) % board.Size
	if n <= 0 {
		// Backward moves never pass start.
		return false
	}
	return p.Position < old || (p.Position == board.StartPos && old != board.StartPos)
}

// Teleport places the player on pos and reports whether the jump counts as
// passing start: landing on or wrapping past index 0. Callers that must
// suppress the salary (go-to-jail) bypass this and set Position directly.
func (p *Player) Teleport(pos int) (bool, error) {
	if pos < 0 || pos >= board.Size {
		return false, board.ErrOutOfRange
	}
	old := p.Position
	p.Position = pos
	return pos < old || (pos == board.StartPos && old != board.StartPos), nil
}

func (p *Player) enterJail() {
	p.Position = board.JailPos
	p.InJail = true
	p.JailTurns = 0
}

func (p *Player) leaveJail() {
	p.InJail = false
	p.JailTurns = 0
}

// takeJailCard removes one held jail-free card, returning it so the engine
// can discard it into the right deck.
func (p *Player) takeJailCard() (deck.Card, bool) {
	if len(p.JailCards) == 0 {
		return deck.Card{}, false
	}
	c := p.JailCards[0]
	p.JailCards = p.JailCards[1:]
	return c, true
}
