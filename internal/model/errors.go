package model

import "errors"

// Move rejections. None of them change the position.
var (
	ErrEmptySource            = errors.New("no piece at from square")
	ErrWrongTurn              = errors.New("not your turn")
	ErrSameColorCapture       = errors.New("destination holds a piece of the same color")
	ErrShapeIllegal           = errors.New("illegal move")
	ErrExposesOwnKing         = errors.New("illegal move, places king in check")
	ErrInvalidPromotionChoice = errors.New("invalid piece for promotion")
	ErrOutOfBounds            = errors.New("square out of bounds")
	ErrMalformedMoveText      = errors.New("malformed move")
	ErrMalformedFEN           = errors.New("malformed FEN")
)

// Game level errors.
var (
	ErrGameOver         = errors.New("game is over")
	ErrNotInGame        = errors.New("player not in game")
	// ErrAlreadyConnected rejects a second socket for a connected player.
	ErrAlreadyConnected = errors.New("connection already exists")
)
