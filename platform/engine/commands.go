package engine

import (
	"fmt"
	"sort"
)

// Out-of-sequence asset commands. These are legal whenever the game is live
// (a player may mortgage mid-debt or between turns to bankroll a trade); the
// Book enforces every ownership and construction rule.

// BuildHouse adds one house (or the hotel) to a street the player holds a
// monopoly on.
func (g *Game) BuildHouse(playerID string, pos int) error {
	if err := g.liveCheck(playerID); err != nil {
		return err
	}
	if err := g.book.Build(playerID, pos); err != nil {
		return err
	}
	g.record(playerID, "built", fmt.Sprintf("position %d now at %d", pos, g.book.Houses(pos)))
	return nil
}

// SellHouse removes one house, crediting half its cost.
func (g *Game) SellHouse(playerID string, pos int) error {
	if err := g.liveCheck(playerID); err != nil {
		return err
	}
	if err := g.book.SellBuilding(playerID, pos); err != nil {
		return err
	}
	g.record(playerID, "sold-building", fmt.Sprintf("position %d", pos))
	return nil
}

// Mortgage encumbers a property for half its price.
func (g *Game) Mortgage(playerID string, pos int) error {
	if err := g.liveCheck(playerID); err != nil {
		return err
	}
	if err := g.book.Mortgage(playerID, pos); err != nil {
		return err
	}
	g.record(playerID, "mortgaged", fmt.Sprintf("position %d for %d", pos, g.book.MortgageValue(pos)))
	return nil
}

// Unmortgage redeems a mortgage at 110% of its value.
func (g *Game) Unmortgage(playerID string, pos int) error {
	if err := g.liveCheck(playerID); err != nil {
		return err
	}
	if err := g.book.Unmortgage(playerID, pos); err != nil {
		return err
	}
	g.record(playerID, "unmortgaged", fmt.Sprintf("position %d", pos))
	return nil
}

func (g *Game) liveCheck(playerID string) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	p := g.player(playerID)
	if p == nil || p.Bankrupt {
		return ErrUnknownPlayer
	}
	return nil
}

// Read-only queries. The UI and bot drivers see the game only through these.

func (g *Game) Phase() Phase { return g.phase }

func (g *Game) CurrentPlayer() string { return g.players[g.current].ID }

func (g *Game) PendingDecision() *Decision {
	if g.pending == nil {
		return nil
	}
	d := *g.pending
	return &d
}

func (g *Game) Balance(playerID string) int { return g.ledger.Balance(playerID) }

func (g *Game) Position(playerID string) (int, error) {
	p := g.player(playerID)
	if p == nil {
		return 0, ErrUnknownPlayer
	}
	return p.Position, nil
}

func (g *Game) OwnedProperties(playerID string) []int { return g.book.OwnedBy(playerID) }

func (g *Game) LastRoll() [2]int { return g.lastRoll }

func (g *Game) Winner() (string, bool) {
	if g.phase != GameOver {
		return "", false
	}
	return g.winner, g.winner != ""
}

// Events returns the journal since the given offset, for UI feeds.
func (g *Game) Events(since int) []Event {
	if since < 0 || since > len(g.events) {
		since = 0
	}
	out := make([]Event, len(g.events)-since)
	copy(out, g.events[since:])
	return out
}

// Rank is one row of the net-worth ranking.
type Rank struct {
	Player   string `json:"player"`
	NetWorth int    `json:"netWorth"`
}

// Ranking orders active players by net worth, richest first.
func (g *Game) Ranking() []Rank {
	var out []Rank
	for _, p := range g.active() {
		out = append(out, Rank{Player: p.ID, NetWorth: g.book.NetWorth(p.ID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NetWorth > out[j].NetWorth })
	return out
}
