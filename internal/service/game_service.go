package service

import (
	"fmt"
	"strings"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/aryavsaigal/rbcb/internal/record"
	"github.com/gofiber/websocket/v2"
)

// GameService translates client input into GameManager calls.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a game for playerID playing color, or the side opposite
// the configured engine color when color is empty. An empty fen starts from
// the initial position. When the engine has the first move it is
// played before returning.
func (gs *GameService) CreateGame(playerID, color, fen string) (model.GameState, error) {
	humanColor := gs.gameManager.settings.Color.Opponent()
	if color != "" {
		c, err := model.ParseColor(strings.ToLower(color))
		if err != nil {
			return model.GameState{}, err
		}
		humanColor = c
	}

	pos := model.NewPosition()
	if fen != "" {
		p, err := model.ParseFEN(fen)
		if err != nil {
			return model.GameState{}, err
		}
		pos = p
	}

	game := gs.gameManager.CreateGame(model.Player{ID: playerID, Color: humanColor}, pos)
	if err := gs.gameManager.PlayEngine(game.ID); err != nil {
		return model.GameState{}, fmt.Errorf("failed to create game: %w", err)
	}
	return game.GetState(), nil
}

func (gs *GameService) Exists(gameID string) bool {
	_, err := gs.gameManager.GetGame(gameID)
	return err == nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// HandleMove plays text, e.g. "e2e4" or "e7e8n", for playerID and returns the
// state after the engine's reply.
func (gs *GameService) HandleMove(gameID, playerID, text string) (model.GameState, error) {
	move, promotion, err := model.ParseUCI(text)
	if err != nil {
		return model.GameState{}, err
	}
	if err := gs.gameManager.MakeMove(gameID, playerID, move, promotion); err != nil {
		return model.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) SetPromotion(gameID, playerID, piece string) (model.GameState, error) {
	if len(piece) != 1 {
		return model.GameState{}, fmt.Errorf("%w: %q", model.ErrInvalidPromotionChoice, piece)
	}
	if err := gs.gameManager.SetPromotion(gameID, playerID, piece[0]); err != nil {
		return model.GameState{}, err
	}
	return gs.gameManager.GetGameState(gameID)
}

// LegalMoves lists the destinations of the piece on square.
func (gs *GameService) LegalMoves(gameID, square string) ([]model.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	from, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	dests := game.LegalDestinations(from)
	if dests == nil {
		dests = []model.Square{}
	}
	return dests, nil
}

func (gs *GameService) PGN(gameID string) (string, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return record.GamePGN(game, "Casual game")
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

// SendError delivers an error envelope to a registered connection.
func (gs *GameService) SendError(gameID, playerID, text string) error {
	return gs.gameManager.SendError(gameID, playerID, text)
}
