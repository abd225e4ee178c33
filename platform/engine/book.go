package engine

import (
	"sort"

	"github.com/DedS3t/monopoly-engine/platform/board"
	"github.com/DedS3t/monopoly-engine/platform/ledger"
)

// Hotel is the house count that represents a hotel.
const Hotel = 5

// railroadRent is indexed by how many railroads the owner holds.
var railroadRent = map[int]int{1: 25, 2: 50, 3: 100, 4: 200}

// streetRentMultiplier is indexed by house count.
var streetRentMultiplier = map[int]int{0: 1, 1: 5, 2: 15, 3: 45, 4: 80, 5: 100}

type holding struct {
	owner     string
	mortgaged bool
	houses    int
}

// Book is the single source of truth for property state: who owns what,
// what is mortgaged, how many houses stand where. Players never carry their
// own property lists.
type Book struct {
	board    *board.Board
	ledger   *ledger.Ledger
	holdings map[int]*holding
}

func NewBook(b *board.Board, l *ledger.Ledger) *Book {
	book := &Book{board: b, ledger: l, holdings: make(map[int]*holding)}
	for _, pos := range b.Purchasables() {
		book.holdings[pos] = &holding{}
	}
	return book
}

// Owner returns the owning player id, "" when unowned or not purchasable.
func (bk *Book) Owner(pos int) string {
	if h, ok := bk.holdings[pos]; ok {
		return h.owner
	}
	return ""
}

func (bk *Book) Mortgaged(pos int) bool {
	if h, ok := bk.holdings[pos]; ok {
		return h.mortgaged
	}
	return false
}

func (bk *Book) Houses(pos int) int {
	if h, ok := bk.holdings[pos]; ok {
		return h.houses
	}
	return 0
}

// OwnedBy returns every position a player owns, in board order.
func (bk *Book) OwnedBy(player string) []int {
	var out []int
	for pos, h := range bk.holdings {
		if h.owner == player {
			out = append(out, pos)
		}
	}
	sort.Ints(out)
	return out
}

// OwnsGroup reports whether player holds every property of the group.
func (bk *Book) OwnsGroup(player, group string) bool {
	members := bk.board.GroupMembers(group)
	if len(members) == 0 {
		return false
	}
	for _, pos := range members {
		if bk.holdings[pos].owner != player {
			return false
		}
	}
	return true
}

func (bk *Book) countOwned(player string, kind board.SpaceKind) int {
	n := 0
	for _, pos := range bk.board.GroupMembers(string(kind)) {
		if bk.holdings[pos].owner == player {
			n++
		}
	}
	return n
}

// CanBuy reports whether player may buy pos: purchasable, unowned, affordable.
func (bk *Book) CanBuy(player string, pos int) error {
	sp, err := bk.board.SpaceAt(pos)
	if err != nil {
		return err
	}
	if !sp.Kind.Purchasable() {
		return ErrNotPurchasable
	}
	if bk.holdings[pos].owner != "" {
		return ErrAlreadyOwned
	}
	if bk.ledger.Balance(player) < sp.Price {
		return ledger.ErrInsufficientFunds
	}
	return nil
}

// Buy debits the purchase price to the bank and records ownership.
func (bk *Book) Buy(player string, pos int) error {
	if err := bk.CanBuy(player, pos); err != nil {
		return err
	}
	sp, _ := bk.board.SpaceAt(pos)
	if err := bk.ledger.Transfer(player, ledger.Bank, sp.Price); err != nil {
		return err
	}
	bk.holdings[pos].owner = player
	return nil
}

// RentDue computes the rent owed for landing on pos with the given dice
// total. Mortgaged properties and unowned spaces collect nothing.
func (bk *Book) RentDue(pos, diceTotal int) int {
	h, ok := bk.holdings[pos]
	if !ok || h.owner == "" || h.mortgaged {
		return 0
	}
	sp, _ := bk.board.SpaceAt(pos)
	switch sp.Kind {
	case board.Street:
		rent := sp.Rent * streetRentMultiplier[h.houses]
		if h.houses == 0 && bk.OwnsGroup(h.owner, sp.Group) {
			rent *= 2
		}
		return rent
	case board.Railroad:
		return railroadRent[bk.countOwned(h.owner, board.Railroad)]
	case board.Utility:
		if bk.countOwned(h.owner, board.Utility) == 2 {
			return diceTotal * 10
		}
		return diceTotal * 4
	}
	return 0
}

// CanBuild checks the full construction rule set: ownership, monopoly,
// no mortgage anywhere in the group, uniform building, hotel limit, funds.
// It returns nil or a *CannotBuildError carrying the first failing reason.
func (bk *Book) CanBuild(player string, pos int) error {
	sp, err := bk.board.SpaceAt(pos)
	if err != nil {
		return err
	}
	if sp.Kind != board.Street {
		return &CannotBuildError{Reason: DenyNotStreet}
	}
	h := bk.holdings[pos]
	if h.owner != player {
		return &CannotBuildError{Reason: DenyNotOwner}
	}
	if !bk.OwnsGroup(player, sp.Group) {
		return &CannotBuildError{Reason: DenyNoMonopoly}
	}
	for _, sib := range bk.board.GroupMembers(sp.Group) {
		if bk.holdings[sib].mortgaged {
			return &CannotBuildError{Reason: DenyGroupMortgaged}
		}
	}
	if h.houses >= Hotel {
		return &CannotBuildError{Reason: DenyHotelLimit}
	}
	// Uniform building: no sibling may end up more than one house behind.
	for _, sib := range bk.board.GroupMembers(sp.Group) {
		if sib != pos && bk.holdings[sib].houses < h.houses {
			return &CannotBuildError{Reason: DenyNonUniform}
		}
	}
	if bk.ledger.Balance(player) < bk.board.HouseCost(sp.Group) {
		return &CannotBuildError{Reason: DenyNoFunds}
	}
	return nil
}

// Build debits the group's house cost and adds one house.
func (bk *Book) Build(player string, pos int) error {
	if err := bk.CanBuild(player, pos); err != nil {
		return err
	}
	sp, _ := bk.board.SpaceAt(pos)
	if err := bk.ledger.Transfer(player, ledger.Bank, bk.board.HouseCost(sp.Group)); err != nil {
		return err
	}
	bk.holdings[pos].houses++
	return nil
}

// SellBuilding removes one house, crediting half its cost. Sales must come
// off the most-built property of the group first.
func (bk *Book) SellBuilding(player string, pos int) error {
	sp, err := bk.board.SpaceAt(pos)
	if err != nil {
		return err
	}
	if sp.Kind != board.Street {
		return &CannotSellError{Reason: "not a street"}
	}
	h := bk.holdings[pos]
	if h.owner != player {
		return ErrNotOwner
	}
	if h.houses == 0 {
		return &CannotSellError{Reason: "no buildings"}
	}
	for _, sib := range bk.board.GroupMembers(sp.Group) {
		if bk.holdings[sib].houses > h.houses {
			return &CannotSellError{Reason: "sell from the most-built property first"}
		}
	}
	h.houses--
	return bk.ledger.Deposit(player, bk.board.HouseCost(sp.Group)/2)
}

// MortgageValue is half the purchase price.
func (bk *Book) MortgageValue(pos int) int {
	sp, err := bk.board.SpaceAt(pos)
	if err != nil {
		return 0
	}
	return sp.Price / 2
}

// Mortgage encumbers an owned, unmortgaged, building-free property and
// credits its mortgage value.
func (bk *Book) Mortgage(player string, pos int) error {
	h, ok := bk.holdings[pos]
	if !ok {
		return ErrNotPurchasable
	}
	if h.owner != player {
		return ErrNotOwner
	}
	if h.mortgaged {
		return ErrAlreadyMortgaged
	}
	if h.houses > 0 {
		return ErrHasBuildings
	}
	h.mortgaged = true
	return bk.ledger.Deposit(player, bk.MortgageValue(pos))
}

// Unmortgage lifts a mortgage for 110% of the mortgage value.
func (bk *Book) Unmortgage(player string, pos int) error {
	h, ok := bk.holdings[pos]
	if !ok {
		return ErrNotPurchasable
	}
	if h.owner != player {
		return ErrNotOwner
	}
	if !h.mortgaged {
		return ErrNotMortgaged
	}
	cost := bk.MortgageValue(pos) * 110 / 100
	if err := bk.ledger.Transfer(player, ledger.Bank, cost); err != nil {
		return err
	}
	h.mortgaged = false
	return nil
}

// TransferProperty reassigns ownership with no money movement. Used by trades
// and bankruptcy; the caller settles any cash separately. Mortgage state
// travels with the property.
func (bk *Book) TransferProperty(pos int, from, to string) error {
	h, ok := bk.holdings[pos]
	if !ok {
		return ErrNotPurchasable
	}
	if h.owner != from {
		return ErrNotOwner
	}
	h.owner = to
	return nil
}

// Release returns every property of a player to the bank: unowned, mortgage
// lifted, houses gone. Used when a player goes bankrupt against the bank.
func (bk *Book) Release(player string) {
	for _, h := range bk.holdings {
		if h.owner == player {
			h.owner = ""
			h.mortgaged = false
			h.houses = 0
		}
	}
}

// BuildingValue is what the player paid for standing houses and hotels.
func (bk *Book) BuildingValue(player string) int {
	total := 0
	for pos, h := range bk.holdings {
		if h.owner != player || h.houses == 0 {
			continue
		}
		sp, _ := bk.board.SpaceAt(pos)
		total += h.houses * bk.board.HouseCost(sp.Group)
	}
	return total
}

// NetWorth is cash plus property value (half for mortgaged) plus buildings.
func (bk *Book) NetWorth(player string) int {
	total := bk.ledger.Balance(player)
	for pos, h := range bk.holdings {
		if h.owner != player {
			continue
		}
		sp, _ := bk.board.SpaceAt(pos)
		if h.mortgaged {
			total += sp.Price / 2
		} else {
			total += sp.Price
		}
		total += h.houses * bk.board.HouseCost(sp.Group)
	}
	return total
}
