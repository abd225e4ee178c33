package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

func (g *Game) discardCard(c deck.Card) {
	switch c.Deck {
	case deck.Chance:
		g.chance.Discard(c)
	case deck.CommunityChest:
		g.chest.Discard(c)
	}
}

func (g *Game) drawAndResolve(p *Player, d *deck.Deck, res *RollResult) {
	c, err := d.Draw()
	if err != nil {
		// Both piles empty cannot happen with 16-card decks unless every
		// card is held, which jail-free retention cannot reach.
		g.record(p.ID, "deck-empty", string(d.Kind()))
		return
	}
	g.record(p.ID, "card", c.Text)
	if res != nil {
		res.Card = &struct {
			Deck deck.Kind `json:"deck"`
			Text string    `json:"text"`
		}{Deck: c.Deck, Text: c.Text}
	}
	g.resolveCard(p, c, res)
	if c.Effect != deck.JailFree {
		g.discardCard(c)
	}
}

// resolveCard applies a card's effect. Movement effects recurse into space
// resolution, so a chance card can land the player on rent, a tax, or even
// another card space.
func (g *Game) resolveCard(p *Player, c deck.Card, res *RollResult) {
	switch c.Effect {
	case deck.Cash:
		if c.Amount >= 0 {
			_ = g.ledger.Deposit(p.ID, c.Amount)
		} else {
			g.charge(p, -c.Amount, ledger.Bank)
		}

	case deck.MoveTo:
		passed, err := p.Teleport(c.Dest)
		if err != nil {
			return
		}
		if passed {
			g.salary(p)
		}
		g.resolveSpace(p, g.lastRoll[0]+g.lastRoll[1], res)

	case deck.MoveBy:
		if p.Advance(c.Steps) {
			g.salary(p)
		}
		g.resolveSpace(p, g.lastRoll[0]+g.lastRoll[1], res)

	case deck.ToJail:
		// Direct teleport: no salary regardless of the wrap arithmetic.
		p.enterJail()
		g.doubles = 0
		if res != nil {
			res.Jailed = true
		}

	case deck.JailFree:
		p.JailCards = append(p.JailCards, c)

	case deck.Repairs:
		total := 0
		for _, pos := range g.book.OwnedBy(p.ID) {
			h := g.book.Houses(pos)
			if h == Hotel {
				total += c.PerHotel
			} else {
				total += h * c.PerHouse
			}
		}
		if total > 0 {
			g.record(p.ID, "repairs", fmt.Sprintf("%d", total))
			g.charge(p, total, ledger.Bank)
		}

	case deck.CollectFromAll:
		for _, other := range g.active() {
			if other.ID == p.ID || p.Bankrupt {
				continue
			}
			g.chargeForced(other, c.Amount, p.ID)
		}

	case deck.PayAll:
		for _, other := range g.active() {
			if other.ID == p.ID || p.Bankrupt {
				continue
			}
			g.chargeForced(p, c.Amount, other.ID)
		}

	default:
		panic(fmt.Sprintf("engine: unhandled card effect %q", c.Effect))
	}
}
