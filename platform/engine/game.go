package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/deck"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
	log "github.com/sirupsen/logrus"
)

const (
	// StartSalary is paid whenever a move passes or lands on start.
	StartSalary = 200
	// Bail is the fixed jail release payment.
	Bail = 50
	// MaxJailTurns is how many failed doubles attempts jail allows before
	// bail is charged automatically.
	MaxJailTurns = 3
)

type Phase string

const (
	// AwaitingRoll: the current player has not rolled yet.
	AwaitingRoll Phase = "awaiting-roll"
	// ResolvingSpace: the roll is done but a decision is outstanding.
	ResolvingSpace Phase = "resolving-space"
	// TurnComplete: resolution finished; waiting for EndTurn.
	TurnComplete Phase = "turn-complete"
	// GameOver: one player left (or none, the degenerate no-winner case).
	GameOver Phase = "game-over"
)

type DecisionKind string

const (
	// DecideBuy: the player may buy the space they stand on, or decline.
	DecideBuy DecisionKind = "buy-or-decline"
	// DecidePayDebt: the player owes more than they hold and must raise
	// funds (mortgage, sell buildings) then settle, or resign.
	DecidePayDebt DecisionKind = "pay-debt"
)

// Decision is the engine's suspension point: instead of blocking for input it
// hands this to the caller, who resumes the machine with the matching command.
type Decision struct {
	Kind     DecisionKind `json:"kind"`
	Player   string       `json:"player"`
	Position int          `json:"position"`
	Amount   int          `json:"amount,omitempty"`
	// Creditor is a player id, or ledger.Bank for bank debts.
	Creditor string `json:"creditor,omitempty"`
}

type Config struct {
	StartingBalance int
	// AutoLiquidate makes the engine mortgage properties and sell buildings
	// on the debtor's behalf before declaring bankruptcy. With it off the
	// turn parks in a pay-debt decision and the caller raises funds itself.
	AutoLiquidate bool
	// AllowMortgagedTrade permits trading mortgaged properties, with the
	// mortgage assumed by the receiver. Off by default.
	AllowMortgagedTrade bool
	// Seed fixes dice and shuffles; 0 seeds from the clock.
	Seed int64
	// Dice overrides the roller, for scripted play.
	Dice func() (int, int)
}

func DefaultConfig() Config {
	return Config{StartingBalance: 1500, AutoLiquidate: true}
}

// Event is one line of the game journal, consumed by UI feeds.
type Event struct {
	Player string `json:"player"`
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
}

// RollResult reports what one roll did. Decision is non-nil when the turn is
// suspended waiting for the caller.
type RollResult struct {
	Dice     [2]int    `json:"dice"`
	Doubles  bool      `json:"doubles"`
	Position int       `json:"position"`
	Jailed   bool      `json:"jailed"`
	Freed    bool      `json:"freed"`
	Card     *struct { // drawn card, if the landing was chance/chest
		Deck deck.Kind `json:"deck"`
		Text string    `json:"text"`
	} `json:"card,omitempty"`
	Decision *Decision `json:"decision,omitempty"`
}

// Game is the turn state machine. It is single-threaded cooperative: the
// caller (socket layer, bot driver, test) invokes one command at a time.
type Game struct {
	ID string

	cfg    Config
	board  *board.Board
	ledger *ledger.Ledger
	book   *Book
	chance *deck.Deck
	chest  *deck.Deck
	rng    *rand.Rand

	players []*Player
	current int

	phase    Phase
	pending  *Decision
	rolled   bool
	doubles  int
	lastRoll [2]int
	// turnEnded marks that the resolution in flight bankrupted the roller
	// and the seat has already moved on.
	turnEnded bool

	proposals map[string]*Proposal

	winner string
	events []Event
}

// Seat describes one player joining a new game.
type Seat struct {
	ID   string
	Name string
}

// New creates a game with the given seats in turn order.
func New(id string, seats []Seat, cfg Config) (*Game, error) {
	if len(seats) < 2 || len(seats) > 8 {
		return nil, fmt.Errorf("engine: need 2-8 players, got %d", len(seats))
	}
	if cfg.StartingBalance <= 0 {
		cfg.StartingBalance = 1500
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		ID:        id,
		cfg:       cfg,
		board:     board.New(),
		ledger:    ledger.New(),
		rng:       rng,
		phase:     AwaitingRoll,
		proposals: make(map[string]*Proposal),
	}
	g.book = NewBook(g.board, g.ledger)
	g.chance = deck.New(deck.Chance, rng)
	g.chest = deck.New(deck.CommunityChest, rng)

	for _, s := range seats {
		if err := g.ledger.Open(s.ID, cfg.StartingBalance); err != nil {
			return nil, err
		}
		g.players = append(g.players, &Player{ID: s.ID, Name: s.Name})
	}
	return g, nil
}

func (g *Game) roll() (int, int) {
	if g.cfg.Dice != nil {
		return g.cfg.Dice()
	}
	return g.rng.Intn(6) + 1, g.rng.Intn(6) + 1
}

func (g *Game) player(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) active() []*Player {
	var out []*Player
	for _, p := range g.players {
		if !p.Bankrupt {
			out = append(out, p)
		}
	}
	return out
}

func (g *Game) record(player, action, detail string) {
	g.events = append(g.events, Event{Player: player, Action: action, Detail: detail})
	log.WithFields(log.Fields{"game": g.ID, "player": player, "detail": detail}).Info(action)
}

// Roll runs one roll for the current player: jail handling, doubles counting,
// movement, salary, space resolution. It returns with a pending decision when
// the caller has to choose (buy/decline, raise funds).
func (g *Game) Roll(playerID string) (*RollResult, error) {
	if g.phase == GameOver {
		return nil, ErrGameOver
	}
	p := g.players[g.current]
	if p.ID != playerID {
		return nil, ErrNotYourTurn
	}
	if g.pending != nil {
		return nil, ErrTurnInProgress
	}
	if g.phase != AwaitingRoll {
		return nil, ErrAlreadyRolled
	}

	d1, d2 := g.roll()
	g.lastRoll = [2]int{d1, d2}
	g.rolled = true
	g.turnEnded = false
	res := &RollResult{Dice: [2]int{d1, d2}, Doubles: d1 == d2}
	g.record(p.ID, "rolled", fmt.Sprintf("%d+%d", d1, d2))

	if p.InJail {
		g.jailRoll(p, d1, d2, res)
		res.Position = p.Position
		res.Decision = g.pending
		return res, nil
	}

	if d1 == d2 {
		g.doubles++
		if g.doubles >= 3 {
			// Third consecutive double: straight to jail, no movement.
			g.doubles = 0
			p.enterJail()
			g.record(p.ID, "jailed", "three consecutive doubles")
			g.phase = TurnComplete
			res.Jailed = true
			res.Position = p.Position
			return res, nil
		}
	} else {
		g.doubles = 0
	}

	if p.Advance(d1 + d2) {
		g.salary(p)
	}
	g.resolveSpace(p, d1+d2, res)
	res.Position = p.Position
	res.Jailed = p.InJail
	res.Decision = g.pending
	return res, nil
}

func (g *Game) salary(p *Player) {
	if err := g.ledger.Deposit(p.ID, StartSalary); err == nil {
		g.record(p.ID, "salary", fmt.Sprintf("passed start, collected %d", StartSalary))
	}
}

// resolveSpace dispatches on the kind of the space p stands on.
func (g *Game) resolveSpace(p *Player, diceTotal int, res *RollResult) {
	sp, err := g.board.SpaceAt(p.Position)
	if err != nil {
		// Position is engine-controlled; out of range here is a bug.
		panic(err)
	}

	switch sp.Kind {
	case board.Street, board.Railroad, board.Utility:
		owner := g.book.Owner(p.Position)
		switch {
		case owner == "":
			g.pending = &Decision{Kind: DecideBuy, Player: p.ID, Position: p.Position, Amount: sp.Price}
			g.phase = ResolvingSpace
			return
		case owner != p.ID:
			rent := g.book.RentDue(p.Position, diceTotal)
			if rent > 0 {
				g.record(p.ID, "rent-due", fmt.Sprintf("%d to %s for %s", rent, owner, sp.Name))
				g.charge(p, rent, owner)
			}
		}
	case board.Tax:
		g.record(p.ID, "tax", fmt.Sprintf("%d (%s)", sp.Tax, sp.Name))
		g.charge(p, sp.Tax, ledger.Bank)
	case board.Chance:
		g.drawAndResolve(p, g.chance, res)
	case board.CommunityChest:
		g.drawAndResolve(p, g.chest, res)
	case board.GoToJail:
		p.enterJail()
		g.doubles = 0
		g.record(p.ID, "jailed", "landed on go-to-jail")
	case board.Start, board.Jail, board.FreeParking:
		// Nothing happens.
	}

	g.finishResolution()
}

// finishResolution closes out the space-resolution step when no decision is
// outstanding, then checks the win condition.
func (g *Game) finishResolution() {
	if g.turnEnded {
		// The roller went bankrupt mid-resolution; bankrupt already handed
		// the dice to the next seat. Leave its AwaitingRoll in place.
		g.turnEnded = false
		return
	}
	if g.phase == GameOver {
		return
	}
	if g.pending != nil {
		g.phase = ResolvingSpace
		return
	}
	g.phase = TurnComplete
	g.checkWin()
}

// charge makes p pay amount to creditor (a player id or ledger.Bank),
// liquidating or suspending per config, and declaring bankruptcy when the
// debt cannot be covered at all.
func (g *Game) charge(p *Player, amount int, creditor string) {
	if amount <= 0 {
		return
	}
	err := g.ledger.Transfer(p.ID, creditor, amount)
	if err == nil {
		return
	}
	if g.cfg.AutoLiquidate {
		g.liquidate(p, amount)
		if g.ledger.Transfer(p.ID, creditor, amount) == nil {
			return
		}
		g.bankrupt(p, creditor)
		return
	}
	if g.canRaise(p) {
		g.pending = &Decision{Kind: DecidePayDebt, Player: p.ID, Position: p.Position, Amount: amount, Creditor: creditor}
		g.phase = ResolvingSpace
		return
	}
	g.bankrupt(p, creditor)
}

// chargeForced is charge without the pay-debt suspension: liquidate, retry,
// bankrupt. Used where the rules leave the player no choice (forced bail,
// collect-from-all cards).
func (g *Game) chargeForced(p *Player, amount int, creditor string) {
	if amount <= 0 {
		return
	}
	if g.ledger.Transfer(p.ID, creditor, amount) == nil {
		return
	}
	g.liquidate(p, amount)
	if g.ledger.Transfer(p.ID, creditor, amount) == nil {
		return
	}
	g.bankrupt(p, creditor)
}

// canRaise reports whether p still has buildings to sell or properties to
// mortgage.
func (g *Game) canRaise(p *Player) bool {
	for _, pos := range g.book.OwnedBy(p.ID) {
		if g.book.Houses(pos) > 0 || !g.book.Mortgaged(pos) {
			return true
		}
	}
	return false
}

// liquidate sells buildings (most-built first, keeping the group uniform)
// then mortgages properties until p's balance covers need.
func (g *Game) liquidate(p *Player, need int) {
	for g.ledger.Balance(p.ID) < need {
		// Pick the owned street with the most houses; the sell-order rule
		// guarantees that one is sellable.
		best, houses := -1, 0
		for _, pos := range g.book.OwnedBy(p.ID) {
			if h := g.book.Houses(pos); h > houses {
				best, houses = pos, h
			}
		}
		if best < 0 {
			break
		}
		if err := g.book.SellBuilding(p.ID, best); err != nil {
			break
		}
		g.record(p.ID, "sold-building", fmt.Sprintf("position %d", best))
	}
	for g.ledger.Balance(p.ID) < need {
		mortgaged := false
		for _, pos := range g.book.OwnedBy(p.ID) {
			if g.book.Mortgaged(pos) || g.book.Houses(pos) > 0 {
				continue
			}
			if err := g.book.Mortgage(p.ID, pos); err == nil {
				g.record(p.ID, "mortgaged", fmt.Sprintf("position %d", pos))
				mortgaged = true
				break
			}
		}
		if !mortgaged {
			break
		}
	}
}

// bankrupt removes p from the game. Properties and remaining cash go to the
// creditor player, or back to the bank (mortgages cleared) for bank debts.
// Held jail cards return to their decks either way.
func (g *Game) bankrupt(p *Player, creditor string) {
	g.record(p.ID, "bankrupt", fmt.Sprintf("creditor %s", creditor))
	p.Bankrupt = true
	// Only the bankrupt player's own outstanding decision dies with them;
	// a third party folding must not wipe the roller's pending buy/debt.
	if g.pending != nil && g.pending.Player == p.ID {
		g.pending = nil
	}

	for _, c := range p.JailCards {
		g.discardCard(c)
	}
	p.JailCards = nil

	if creditor != ledger.Bank {
		for _, pos := range g.book.OwnedBy(p.ID) {
			_ = g.book.TransferProperty(pos, p.ID, creditor)
		}
		if bal, err := g.ledger.Close(p.ID); err == nil && bal > 0 {
			_ = g.ledger.Deposit(creditor, bal)
		}
	} else {
		g.book.Release(p.ID)
		_, _ = g.ledger.Close(p.ID)
	}

	g.checkWin()
	if g.phase == GameOver {
		return
	}
	if g.players[g.current] == p {
		// A bankrupt player has no turn left to end; hand the dice on.
		g.rolled = false
		g.doubles = 0
		g.advanceSeat()
		g.phase = AwaitingRoll
		g.turnEnded = true
	}
}

func (g *Game) checkWin() {
	alive := g.active()
	if len(alive) > 1 {
		return
	}
	g.phase = GameOver
	g.pending = nil
	if len(alive) == 1 {
		g.winner = alive[0].ID
		g.record(g.winner, "won", "last player standing")
	} else {
		// Degenerate: everyone gone at once. Terminal, no winner.
		g.record("", "game-over", "no winner")
	}
}

// Buy resolves a pending buy decision by purchasing the space.
func (g *Game) Buy(playerID string) error {
	if err := g.needDecision(playerID, DecideBuy); err != nil {
		return err
	}
	if err := g.book.Buy(playerID, g.pending.Position); err != nil {
		return err
	}
	sp, _ := g.board.SpaceAt(g.pending.Position)
	g.record(playerID, "bought", fmt.Sprintf("%s for %d", sp.Name, sp.Price))
	g.pending = nil
	g.finishResolution()
	return nil
}

// Decline resolves a pending buy decision by passing. There is no auction.
func (g *Game) Decline(playerID string) error {
	if err := g.needDecision(playerID, DecideBuy); err != nil {
		return err
	}
	g.record(playerID, "declined", "")
	g.pending = nil
	g.finishResolution()
	return nil
}

// SettleDebt retries a pending debt after the caller raised funds. If the
// balance still falls short and nothing is left to liquidate, the player
// goes bankrupt.
func (g *Game) SettleDebt(playerID string) error {
	if err := g.needDecision(playerID, DecidePayDebt); err != nil {
		return err
	}
	p := g.player(playerID)
	d := g.pending
	if err := g.ledger.Transfer(p.ID, d.Creditor, d.Amount); err != nil {
		if !g.canRaise(p) {
			g.bankrupt(p, d.Creditor)
			return nil
		}
		return err
	}
	g.record(playerID, "paid-debt", fmt.Sprintf("%d to %s", d.Amount, d.Creditor))
	g.pending = nil
	g.finishResolution()
	return nil
}

// Resign forfeits the game; treated as bankruptcy to the bank, or to the
// creditor when resigning out of an unpayable debt.
func (g *Game) Resign(playerID string) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	p := g.player(playerID)
	if p == nil || p.Bankrupt {
		return ErrUnknownPlayer
	}
	creditor := ledger.Bank
	if g.pending != nil && g.pending.Player == playerID && g.pending.Kind == DecidePayDebt {
		creditor = g.pending.Creditor
	}
	g.bankrupt(p, creditor)
	return nil
}

// EndTurn closes a completed turn. On doubles the same player keeps the dice
// unless the roll sent them to jail; otherwise the next non-bankrupt seat is
// up, wrapping in fixed order.
func (g *Game) EndTurn(playerID string) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	p := g.players[g.current]
	if p.ID != playerID {
		return ErrNotYourTurn
	}
	if g.pending != nil {
		return ErrTurnInProgress
	}
	if g.phase != TurnComplete {
		return ErrMustRollFirst
	}

	g.rolled = false
	if g.doubles > 0 && !p.InJail && !p.Bankrupt {
		// Doubles: same player rolls again.
		g.phase = AwaitingRoll
		return nil
	}
	g.doubles = 0
	g.advanceSeat()
	g.phase = AwaitingRoll
	return nil
}

func (g *Game) advanceSeat() {
	for i := 1; i <= len(g.players); i++ {
		next := (g.current + i) % len(g.players)
		if !g.players[next].Bankrupt {
			g.current = next
			return
		}
	}
}

func (g *Game) needDecision(playerID string, kind DecisionKind) error {
	if g.phase == GameOver {
		return ErrGameOver
	}
	if g.pending == nil {
		return ErrNoPendingDecision
	}
	if g.pending.Player != playerID {
		return ErrNotYourTurn
	}
	if g.pending.Kind != kind {
		return ErrTurnInProgress
	}
	return nil
}
