// Package deck implements the Chance and Community Chest decks: two
// independent 16-card piles with draw, discard and reshuffle. Card effects
// are plain data; applying them to the game is the engine's job.
package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrNoCards = errors.New("no cards left to draw")

type Kind string

const (
	Chance         Kind = "chance"
	CommunityChest Kind = "chest"
)

type EffectKind string

const (
	// Cash credits Amount when positive, charges it to the bank when negative.
	Cash EffectKind = "cash"
	// MoveTo teleports to Dest, paying the start salary when the move passes start.
	MoveTo EffectKind = "move-to"
	// MoveBy moves Steps spaces (negative moves backwards, never pays salary).
	MoveBy EffectKind = "move-by"
	// ToJail sends the player straight to jail, no salary.
	ToJail EffectKind = "go-to-jail"
	// JailFree is retained by the drawing player instead of being discarded.
	JailFree EffectKind = "jail-free"
	// Repairs charges PerHouse per house and PerHotel per hotel owned.
	Repairs EffectKind = "repairs"
	// CollectFromAll collects Amount from every other active player.
	CollectFromAll EffectKind = "collect-from-all"
	// PayAll pays Amount to every other active player.
	PayAll EffectKind = "pay-all"
)

type Card struct {
	Deck     Kind       `json:"deck"`
	Text     string     `json:"text"`
	Effect   EffectKind `json:"effect"`
	Amount   int        `json:"amount,omitempty"`
	Dest     int        `json:"dest,omitempty"`
	Steps    int        `json:"steps,omitempty"`
	PerHouse int        `json:"perHouse,omitempty"`
	PerHotel int        `json:"perHotel,omitempty"`
}

// DeckSize is the fixed card count per deck.
const DeckSize = 16

// Deck is an ordered draw pile plus a discard pile. A card is never in both.
type Deck struct {
	kind    Kind
	draw    []Card
	discard []Card
	rng     *rand.Rand
}

// New builds and shuffles a deck of the given kind.
func New(kind Kind, rng *rand.Rand) *Deck {
	var cards []Card
	switch kind {
	case Chance:
		cards = chanceCards()
	case CommunityChest:
		cards = chestCards()
	default:
		panic(fmt.Sprintf("deck: unknown kind %q", kind))
	}
	if len(cards) != DeckSize {
		panic(fmt.Sprintf("deck: %s has %d cards, %d expected", kind, len(cards), DeckSize))
	}
	d := &Deck{kind: kind, draw: cards, rng: rng}
	d.shuffle()
	return d
}

func (d *Deck) Kind() Kind { return d.kind }

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.draw), func(i, j int) {
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	})
}

// Draw pops the top card, recycling the discard pile into a freshly shuffled
// draw pile first when the draw pile is empty.
func (d *Deck) Draw() (Card, error) {
	if len(d.draw) == 0 {
		if len(d.discard) == 0 {
			return Card{}, ErrNoCards
		}
		d.draw = d.discard
		d.discard = nil
		d.shuffle()
	}
	c := d.draw[0]
	d.draw = d.draw[1:]
	return c, nil
}

// Discard returns a resolved card to the bottom of the discard pile.
// Retained jail-free cards come back through here when they are spent.
func (d *Deck) Discard(c Card) {
	d.discard = append(d.discard, c)
}

// Remaining is the number of cards in the draw pile.
func (d *Deck) Remaining() int { return len(d.draw) }

// Total is the number of cards held by the deck across both piles. Cards
// retained by players (jail-free) are not counted here.
func (d *Deck) Total() int { return len(d.draw) + len(d.discard) }
