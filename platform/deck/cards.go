package deck

// The two classic 16-card decks. Destinations reference the board layout in
// platform/board/board.json.

func chanceCards() []Card {
	return []Card{
		{Deck: Chance, Text: "Advance to Start (collect salary)", Effect: MoveTo, Dest: 0},
		{Deck: Chance, Text: "Advance to Estacionamento Grátis", Effect: MoveTo, Dest: 20},
		{Deck: Chance, Text: "Advance to Avenida Morumbi", Effect: MoveTo, Dest: 37},
		{Deck: Chance, Text: "Take a ride to Estação de Metrô Maracanã", Effect: MoveTo, Dest: 5},
		{Deck: Chance, Text: "Advance to Companhia Elétrica", Effect: MoveTo, Dest: 12},
		{Deck: Chance, Text: "Advance to Avenida Atlântica", Effect: MoveTo, Dest: 14},
		{Deck: Chance, Text: "Advance to Rua Oscar Freire", Effect: MoveTo, Dest: 39},
		{Deck: Chance, Text: "Go back 3 spaces", Effect: MoveBy, Steps: -3},
		{Deck: Chance, Text: "Go directly to jail. Do not pass Start, do not collect salary", Effect: ToJail},
		{Deck: Chance, Text: "Get out of jail free. Keep this card until needed", Effect: JailFree},
		{Deck: Chance, Text: "General repairs: pay 15", Effect: Cash, Amount: -15},
		{Deck: Chance, Text: "Speeding fine: pay 50", Effect: Cash, Amount: -50},
		{Deck: Chance, Text: "Street assessment: pay 25 per house, 100 per hotel", Effect: Repairs, PerHouse: 25, PerHotel: 100},
		{Deck: Chance, Text: "Your building loan matures: collect 150", Effect: Cash, Amount: 150},
		{Deck: Chance, Text: "You won a crossword competition: collect 100", Effect: Cash, Amount: 100},
		{Deck: Chance, Text: "Bank pays you a dividend of 50", Effect: Cash, Amount: 50},
	}
}

func chestCards() []Card {
	return []Card{
		{Deck: CommunityChest, Text: "Advance to Start (collect salary)", Effect: MoveTo, Dest: 0},
		{Deck: CommunityChest, Text: "Get out of jail free. Keep this card until needed", Effect: JailFree},
		{Deck: CommunityChest, Text: "Go directly to jail. Do not pass Start, do not collect salary", Effect: ToJail},
		{Deck: CommunityChest, Text: "Bank error in your favor: collect 200", Effect: Cash, Amount: 200},
		{Deck: CommunityChest, Text: "You inherit 100", Effect: Cash, Amount: 100},
		{Deck: CommunityChest, Text: "Consulting fee: collect 25", Effect: Cash, Amount: 25},
		{Deck: CommunityChest, Text: "Income tax refund: collect 20", Effect: Cash, Amount: 20},
		{Deck: CommunityChest, Text: "Holiday fund matures: collect 100", Effect: Cash, Amount: 100},
		{Deck: CommunityChest, Text: "Life insurance matures: collect 100", Effect: Cash, Amount: 100},
		{Deck: CommunityChest, Text: "Doctor's fee: collect 50 from every player", Effect: CollectFromAll, Amount: 50},
		{Deck: CommunityChest, Text: "School fees: pay 50", Effect: Cash, Amount: -50},
		{Deck: CommunityChest, Text: "Hospital bill: pay 100", Effect: Cash, Amount: -100},
		{Deck: CommunityChest, Text: "Property assessment: pay 150", Effect: Cash, Amount: -150},
		{Deck: CommunityChest, Text: "Elected chairman of the board: pay 100", Effect: Cash, Amount: -100},
		{Deck: CommunityChest, Text: "Street assessment: pay 40 per house, 115 per hotel", Effect: Repairs, PerHouse: 40, PerHotel: 115},
		{Deck: CommunityChest, Text: "Second prize in a beauty contest: collect 10", Effect: Cash, Amount: 10},
	}
}
