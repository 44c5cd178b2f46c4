package model

// Player is the human seat of a game against the engine.
type Player struct {
	ID    string
	Color Color
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color Color       `json:"color"`
	Clock ClientClock `json:"clock"`
}
