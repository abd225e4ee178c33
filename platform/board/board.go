package board

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

// Size is the number of spaces on the board.
const Size = 40

// Well-known positions.
const (
	StartPos    = 0
	JailPos     = 10
	GoToJailPos = 30
)

var ErrOutOfRange = errors.New("position out of range")

type SpaceKind string

const (
	Start          SpaceKind = "start"
	Street         SpaceKind = "street"
	Railroad       SpaceKind = "railroad"
	Utility        SpaceKind = "utility"
	Tax            SpaceKind = "tax"
	Chance         SpaceKind = "chance"
	CommunityChest SpaceKind = "chest"
	Jail           SpaceKind = "jail"
	GoToJail       SpaceKind = "go-to-jail"
	FreeParking    SpaceKind = "free-parking"
)

// Purchasable reports whether spaces of this kind can be owned.
func (k SpaceKind) Purchasable() bool {
	return k == Street || k == Railroad || k == Utility
}

type Space struct {
	Position int       `json:"position"`
	Name     string    `json:"name"`
	Kind     SpaceKind `json:"kind"`
	Group    string    `json:"group,omitempty"`
	Price    int       `json:"price,omitempty"`
	Rent     int       `json:"rent,omitempty"` // base rent, streets only
	Tax      int       `json:"tax,omitempty"`
}

// houseCosts is the fixed construction cost per street group.
var houseCosts = map[string]int{
	"brown":      50,
	"light-blue": 50,
	"pink":       100,
	"orange":     100,
	"red":        150,
	"yellow":     150,
	"green":      200,
	"dark-blue":  200,
}

//go:embed board.json
var boardJSON []byte

// Board is the immutable 40-space layout. Prices, rents and groups are
// configuration data shipped with the binary, never derived at runtime.
type Board struct {
	spaces []Space
	groups map[string][]int
}

// New builds the board from the embedded layout. A malformed layout is a
// build defect, not a runtime condition, so New panics instead of returning
// an error.
func New() *Board {
	var spaces []Space
	if err := json.Unmarshal(boardJSON, &spaces); err != nil {
		panic(fmt.Sprintf("board: bad layout data: %v", err))
	}
	if len(spaces) != Size {
		panic(fmt.Sprintf("board: %d spaces found, %d expected", len(spaces), Size))
	}

	groups := make(map[string][]int)
	for i, s := range spaces {
		if s.Position != i {
			panic(fmt.Sprintf("board: space %q out of order at index %d", s.Name, i))
		}
		switch s.Kind {
		case Street:
			if s.Group == "" || s.Price <= 0 || s.Rent <= 0 {
				panic(fmt.Sprintf("board: street %q missing group/price/rent", s.Name))
			}
			if _, ok := houseCosts[s.Group]; !ok {
				panic(fmt.Sprintf("board: street %q has unknown group %q", s.Name, s.Group))
			}
			groups[s.Group] = append(groups[s.Group], i)
		case Railroad, Utility:
			if s.Price <= 0 {
				panic(fmt.Sprintf("board: %s %q missing price", s.Kind, s.Name))
			}
			groups[string(s.Kind)] = append(groups[string(s.Kind)], i)
		case Tax:
			if s.Tax <= 0 {
				panic(fmt.Sprintf("board: tax space %q missing amount", s.Name))
			}
		}
	}

	return &Board{spaces: spaces, groups: groups}
}

// SpaceAt returns the space at pos.
func (b *Board) SpaceAt(pos int) (Space, error) {
	if pos < 0 || pos >= Size {
		return Space{}, ErrOutOfRange
	}
	return b.spaces[pos], nil
}

// KindAt returns the kind of the space at pos, or "" when out of range.
func (b *Board) KindAt(pos int) SpaceKind {
	if pos < 0 || pos >= Size {
		return ""
	}
	return b.spaces[pos].Kind
}

// GroupMembers returns the positions belonging to a street color group, or
// to the railroad/utility groups when passed their kind names.
func (b *Board) GroupMembers(group string) []int {
	members := b.groups[group]
	out := make([]int, len(members))
	copy(out, members)
	return out
}

// StreetGroups returns the names of the eight color groups.
func (b *Board) StreetGroups() []string {
	var out []string
	for g := range b.groups {
		if g != string(Railroad) && g != string(Utility) {
			out = append(out, g)
		}
	}
	return out
}

// HouseCost returns the per-house construction cost of a street group.
func (b *Board) HouseCost(group string) int {
	return houseCosts[group]
}

// Purchasables returns every position that can be owned.
func (b *Board) Purchasables() []int {
	var out []int
	for i, s := range b.spaces {
		if s.Kind.Purchasable() {
			out = append(out, i)
		}
	}
	return out
}
