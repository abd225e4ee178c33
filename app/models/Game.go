package models

// Game is a lobby row. Status moves from "open" to "in progress" when
// the session starts; finished games are deleted.
type Game struct {
	Id     string
	Name   string
	Status string
}

type GameCreateDto struct {
	Name string
}

type VerifyGameDto struct {
	Code    string
	User_id string
}
