package models

// Player is a lobby seat row. Live game state is kept by the engine,
// never in postgres.
type Player struct {
	User_id  string
	Game_id  string
	Username string
}
