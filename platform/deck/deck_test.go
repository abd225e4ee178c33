package deck

import (
	"errors"
	"math/rand"
	"testing"
)

func newDeck(t *testing.T, kind Kind) *Deck {
	t.Helper()
	return New(kind, rand.New(rand.NewSource(7)))
}

func TestDeckSizes(t *testing.T) {
	for _, kind := range []Kind{Chance, CommunityChest} {
		d := newDeck(t, kind)
		if d.Total() != DeckSize {
			t.Fatalf("%s: %d cards, want %d", kind, d.Total(), DeckSize)
		}
		for _, c := range append(chanceCards(), chestCards()...) {
			if c.Text == "" || c.Effect == "" {
				t.Fatalf("card with empty text or effect: %+v", c)
			}
		}
	}
}

func TestDrawDiscardReshuffle(t *testing.T) {
	d := newDeck(t, Chance)

	seen := make(map[string]int)
	for i := 0; i < DeckSize; i++ {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		seen[c.Text]++
		d.Discard(c)
	}
	if d.Remaining() != 0 {
		t.Fatalf("draw pile should be empty, has %d", d.Remaining())
	}
	if d.Total() != DeckSize {
		t.Fatalf("cards lost: total %d", d.Total())
	}

	// The next draw must trigger exactly one reshuffle of the discard pile.
	c, err := d.Draw()
	if err != nil {
		t.Fatalf("draw after exhaustion: %v", err)
	}
	if seen[c.Text] == 0 {
		t.Fatalf("reshuffled card %q was never in the deck", c.Text)
	}
	if d.Remaining() != DeckSize-1 {
		t.Fatalf("remaining after reshuffle = %d, want %d", d.Remaining(), DeckSize-1)
	}
}

func TestDrawBothPilesEmpty(t *testing.T) {
	d := newDeck(t, CommunityChest)
	for i := 0; i < DeckSize; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		// Nothing discarded: simulates every card being held.
	}
	if _, err := d.Draw(); !errors.Is(err, ErrNoCards) {
		t.Fatalf("expected ErrNoCards, got %v", err)
	}
}

func TestRetainedCardComesBackThroughDiscard(t *testing.T) {
	d := newDeck(t, Chance)

	var held Card
	drawn := 0
	for {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("never drew the jail-free card: %v", err)
		}
		drawn++
		if c.Effect == JailFree {
			held = c
			break
		}
		d.Discard(c)
	}
	if d.Total() != DeckSize-1 {
		t.Fatalf("held card still counted in deck: total %d", d.Total())
	}

	d.Discard(held)
	if d.Total() != DeckSize {
		t.Fatalf("deck closure broken after returning held card: total %d (drew %d)", d.Total(), drawn)
	}
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	a := New(Chance, rand.New(rand.NewSource(42)))
	b := New(Chance, rand.New(rand.NewSource(42)))
	for i := 0; i < DeckSize; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca.Text != cb.Text {
			t.Fatalf("draw %d diverged: %q vs %q", i, ca.Text, cb.Text)
		}
	}
}
