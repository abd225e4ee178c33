package engine

import (
	"fmt"

	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// jailRoll handles the roll of a jailed player: doubles walk free and move by
// the roll, a third failed attempt charges bail automatically and releases
// without a move.
func (g *Game) jailRoll(p *Player, d1, d2 int, res *RollResult) {
	if d1 == d2 {
		p.leaveJail()
		res.Freed = true
		g.record(p.ID, "freed", "rolled doubles in jail")
		// The roll is consumed as the move; no extra turn for these doubles.
		g.doubles = 0
		if p.Advance(d1 + d2) {
			g.salary(p)
		}
		g.resolveSpace(p, d1+d2, res)
		return
	}

	p.JailTurns++
	if p.JailTurns >= MaxJailTurns {
		// Forced payment: no decision to make, so liquidation is automatic
		// here even when AutoLiquidate is off.
		g.record(p.ID, "bail", fmt.Sprintf("forced after %d jail turns", MaxJailTurns))
		g.chargeForced(p, Bail, ledger.Bank)
		if !p.Bankrupt {
			p.leaveJail()
			res.Freed = true
		}
		g.finishResolution()
		return
	}
	g.record(p.ID, "jail-turn", fmt.Sprintf("%d/%d", p.JailTurns, MaxJailTurns))
	g.phase = TurnComplete
}

// PayBail releases the player immediately for the fixed bail, debited to the
// bank. Allowed any time before the jail roll of the turn.
func (g *Game) PayBail(playerID string) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	p := g.player(playerID)
	if p == nil || p.Bankrupt {
		return ErrUnknownPlayer
	}
	if !p.InJail {
		return ErrNotInJail
	}
	if err := g.ledger.Transfer(p.ID, ledger.Bank, Bail); err != nil {
		return err
	}
	p.leaveJail()
	g.record(p.ID, "bail", fmt.Sprintf("paid %d", Bail))
	return nil
}

// UseJailCard spends a held get-out-of-jail card. The card goes back to the
// discard pile of the deck it came from.
func (g *Game) UseJailCard(playerID string) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	p := g.player(playerID)
	if p == nil || p.Bankrupt {
		return ErrUnknownPlayer
	}
	if !p.InJail {
		return ErrNotInJail
	}
	c, ok := p.takeJailCard()
	if !ok {
		return ErrNoJailCard
	}
	g.discardCard(c)
	p.leaveJail()
	g.record(p.ID, "freed", "used get-out-of-jail card")
	return nil
}
