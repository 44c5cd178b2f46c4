package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aryavsaigal/rbcb/internal/ws"
	"github.com/gofiber/websocket/v2"
)

const writeWait = 5 * time.Second

// client owns the write side of one connection. The websocket allows a single
// concurrent writer, so every frame goes through send.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*client // playerID -> connection
	mu          sync.RWMutex
}

// Game is one human playing the engine: the position plus everything the
// interface layers need around it.
type Game struct {
	ID          string
	mu          sync.Mutex
	position    Position
	start       Position
	human       Player
	engineColor Color
	history     []Ply
	lastMove    *Move
	clocks      [2]*Clock
	connections *GameConnections
}

// GameState is the snapshot sent to clients.
type GameState struct {
	ID              string   `json:"id"`
	Board           []string `json:"board"`
	FEN             string   `json:"fen"`
	ToMove          Color    `json:"toMove"`
	Status          Status   `json:"status"`
	Label           string   `json:"label"`
	IsCheck         bool     `json:"isCheck"`
	Ply             int      `json:"ply"`
	Promotion       string   `json:"promotion"`
	EnPassantTarget *Square  `json:"enPassantTarget"`
	LastMove        *Move    `json:"lastMove"`
	MoveHistory     []Ply    `json:"moveHistory"`
	Players         struct {
		Human  ClientPlayer `json:"human"`
		Engine ClientPlayer `json:"engine"`
	} `json:"players"`
}

func NewGame(id string, human Player) *Game {
	return NewGameFromPosition(id, human, NewPosition())
}

// NewGameFromPosition starts a game from an arbitrary position, e.g. one read
// from FEN.
func NewGameFromPosition(id string, human Player, pos Position) *Game {
	g := &Game{
		ID:          id,
		position:    pos,
		start:       pos,
		human:       human,
		engineColor: human.Color.Opponent(),
		history:     make([]Ply, 0),
		clocks:      [2]*Clock{NewClock(), NewClock()},
		connections: NewGameConnections(),
	}
	g.clocks[pos.Turn].Start()
	return g
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*client),
	}
}

// Position returns a copy of the current position.
func (g *Game) Position() Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position
}

// StartFEN is the position the game began from.
func (g *Game) StartFEN() string {
	return g.start.FEN()
}

func (g *Game) HumanColor() Color {
	return g.human.Color
}

func (g *Game) EngineColor() Color {
	return g.engineColor
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return playerID != "" && playerID == g.human.ID
}

// EngineToMove reports whether the game is running and waiting on the engine.
func (g *Game) EngineToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position.Turn == g.engineColor && !g.position.Classify().Terminal()
}

func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position.Classify()
}

// MakeMove plays the human's move. A non-zero promotion replaces the
// promotion choice before the move is tried.
func (g *Game) MakeMove(playerID string, move Move, promotion byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if g.position.Turn != g.human.Color {
		return fmt.Errorf("%w: engine is thinking", ErrWrongTurn)
	}
	if promotion != 0 {
		if !ValidPromotion(promotion) {
			return fmt.Errorf("%w: %q", ErrInvalidPromotionChoice, promotion)
		}
		g.position.SetPromotion(promotion)
	}
	return g.apply(move)
}

// ApplyEngineMove plays a move chosen by the search.
func (g *Game) ApplyEngineMove(move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.position.Turn != g.engineColor {
		return fmt.Errorf("%w: %s to move", ErrWrongTurn, g.position.Turn)
	}
	return g.apply(move)
}

func (g *Game) SetPromotion(playerID string, choice byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotInGame
	}
	if !ValidPromotion(choice) {
		return fmt.Errorf("%w: %q", ErrInvalidPromotionChoice, choice)
	}
	g.position.SetPromotion(choice)
	g.broadcastState(g.snapshot())
	return nil
}

func (g *Game) LegalDestinations(from Square) []Square {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.position.LegalDestinations(from)
}

func (g *Game) History() []Ply {
	g.mu.Lock()
	defer g.mu.Unlock()

	return append([]Ply(nil), g.history...)
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) apply(move Move) error {
	if g.position.Classify().Terminal() {
		return ErrGameOver
	}
	before := g.position
	if err := g.position.Apply(move); err != nil {
		return err
	}

	g.history = append(g.history, makePly(&before, &g.position, move))
	g.lastMove = &move

	g.clocks[before.Turn].Stop()
	if !g.position.Classify().Terminal() {
		g.clocks[g.position.Turn].Start()
	}

	g.broadcastState(g.snapshot())
	return nil
}

// makePly describes the move that turned before into after.
func makePly(before, after *Position, move Move) Ply {
	piece := before.At(move.From)
	ply := Ply{
		Color:    piece.Color,
		Piece:    piece,
		Move:     move,
		Notation: move.String(),
	}
	if captured := before.At(move.To); !captured.IsEmpty() {
		ply.CapturedPiece = &captured
	} else if piece.Type == Pawn && move.From.File != move.To.File {
		victim := NewPiece(Pawn, piece.Color.Opponent())
		ply.CapturedPiece = &victim
	}
	if piece.Type == King && abs(move.To.File-move.From.File) == 2 {
		side := Kingside
		if move.To.File < move.From.File {
			side = Queenside
		}
		geometry := castles[side]
		ply.CastleRookMove = &CastleRookMove{
			From: Square{Rank: move.From.Rank, File: geometry.rookFrom},
			To:   Square{Rank: move.From.Rank, File: geometry.rookTo},
		}
	}
	if landed := after.At(move.To); piece.Type == Pawn && landed.Type != Pawn {
		promoted := landed.Type
		ply.Promotion = &promoted
		ply.Notation += string(promoted.notation())
	}
	return ply
}

func (g *Game) snapshot() GameState {
	status := g.position.Classify()
	state := GameState{
		ID:          g.ID,
		Board:       g.position.Rows(),
		FEN:         g.position.FEN(),
		ToMove:      g.position.Turn,
		Status:      status,
		Label:       status.Label(),
		IsCheck:     status == StatusWhiteInCheck || status == StatusBlackInCheck,
		Ply:         g.position.Ply,
		Promotion:   string(g.position.Promotion),
		MoveHistory: append([]Ply(nil), g.history...),
	}
	if target, ok := g.position.EnPassantTarget(); ok {
		state.EnPassantTarget = &target
	}
	if g.lastMove != nil {
		last := *g.lastMove
		state.LastMove = &last
	}
	state.Players.Human = ClientPlayer{ID: g.human.ID, Color: g.human.Color, Clock: g.clocks[g.human.Color].Client()}
	state.Players.Engine = ClientPlayer{ID: "engine", Color: g.engineColor, Clock: g.clocks[g.engineColor].Client()}
	return state
}

// RegisterConnection attaches an observer. Anyone may watch a game; only the
// human seat may move. The new connection receives the current state before
// any later broadcast.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	if playerID == "" {
		return errors.New("player ID is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return ErrAlreadyConnected
	}

	c := &client{conn: conn}
	g.connections.connections[playerID] = c
	g.connections.mu.Unlock()
	log.Printf("registered connection %p for player %s in game %s", conn, playerID, g.ID)

	msg, err := stateMessage(g.snapshot())
	if err != nil {
		return err
	}
	if err := c.send(msg); err != nil {
		g.drop(playerID, c)
		return fmt.Errorf("sending initial state: %w", err)
	}
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		log.Printf("unregistering connection for player %s in game %s", playerID, g.ID)
		delete(g.connections.connections, playerID)
	}
}

// SendError reports a failure to one connected player through the same
// writer that carries state broadcasts.
func (g *Game) SendError(playerID, text string) error {
	g.connections.mu.RLock()
	c, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return ErrNotInGame
	}

	payload, err := json.Marshal(ws.ErrorPayload{Error: text})
	if err != nil {
		return err
	}
	return c.send(ws.Message{Type: ws.MessageTypeError, Payload: payload})
}

func stateMessage(state GameState) (ws.Message, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: ws.MessageTypeGameState, Payload: payload}, nil
}

// drop removes a connection unless it has already been replaced.
func (g *Game) drop(playerID string, c *client) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if g.connections.connections[playerID] == c {
		delete(g.connections.connections, playerID)
	}
}

// broadcastState runs with g.mu held, so states reach every client in the
// order they were produced.
func (g *Game) broadcastState(state GameState) {
	msg, err := stateMessage(state)
	if err != nil {
		log.Printf("failed to marshal state for game %s: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*client, len(g.connections.connections))
	for playerID, c := range g.connections.connections {
		active[playerID] = c
	}
	g.connections.mu.RUnlock()

	for playerID, c := range active {
		if err := c.send(msg); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			g.drop(playerID, c)
		}
	}
}
