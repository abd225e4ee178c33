package models

// TradeDto is the propose-trade socket payload. Give/Take hold board
// positions; cash legs can be zero.
type TradeDto struct {
	Game_id      string `json:"game_id"`
	User_id      string `json:"user_id"`
	Counterparty string `json:"counterparty"`
	Give         []int  `json:"give"`
	Take         []int  `json:"take"`
	GiveCash     int    `json:"give_cash"`
	TakeCash     int    `json:"take_cash"`
}
