package engine

import (
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// Snapshot is the complete read-only view of a game, shaped for JSON. Bots
// and the UI consume this; neither can reach the mutable state behind it.
type Snapshot struct {
	ID       string            `json:"id"`
	Phase    Phase             `json:"phase"`
	Current  string            `json:"current"`
	Pending  *Decision         `json:"pending,omitempty"`
	LastRoll [2]int            `json:"lastRoll"`
	Winner   string            `json:"winner,omitempty"`
	Players  []PlayerSnapshot  `json:"players"`
	Holdings []HoldingSnapshot `json:"holdings"`
	Journal  []ledger.Entry    `json:"journal"`
}

type PlayerSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   int    `json:"balance"`
	Position  int    `json:"position"`
	InJail    bool   `json:"inJail"`
	JailTurns int    `json:"jailTurns"`
	JailCards int    `json:"jailCards"`
	Bankrupt  bool   `json:"bankrupt"`
	NetWorth  int    `json:"netWorth"`
}

type HoldingSnapshot struct {
	Position  int    `json:"position"`
	Owner     string `json:"owner,omitempty"`
	Mortgaged bool   `json:"mortgaged,omitempty"`
	Houses    int    `json:"houses,omitempty"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:       g.ID,
		Phase:    g.phase,
		Current:  g.players[g.current].ID,
		Pending:  g.PendingDecision(),
		LastRoll: g.lastRoll,
		Winner:   g.winner,
		Journal:  g.ledger.Journal(),
	}
	for _, p := range g.players {
		s.Players = append(s.Players, PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			Balance:   g.ledger.Balance(p.ID),
			Position:  p.Position,
			InJail:    p.InJail,
			JailTurns: p.JailTurns,
			JailCards: len(p.JailCards),
			Bankrupt:  p.Bankrupt,
			NetWorth:  g.book.NetWorth(p.ID),
		})
	}
	for _, pos := range g.board.Purchasables() {
		if owner := g.book.Owner(pos); owner != "" {
			s.Holdings = append(s.Holdings, HoldingSnapshot{
				Position:  pos,
				Owner:     owner,
				Mortgaged: g.book.Mortgaged(pos),
				Houses:    g.book.Houses(pos),
			})
		}
	}
	return s
}
