// service/game_manager.go
package service

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/aryavsaigal/rbcb/internal/engine"
	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNotYourTurn  = errors.New("not your turn, the engine is to move")
	ErrGameOver     = model.ErrGameOver
)

// EngineSettings configures the searcher attached to every new game.
type EngineSettings struct {
	Depth     int
	Pruning   bool
	Seed      uint64
	Promotion byte
	// Color is the engine's side when a client does not pick one.
	Color model.Color
}

// seat is one game and the searcher that plays against its human.
type seat struct {
	game     *model.Game
	searcher *engine.Searcher
	// thinking serializes engine turns of this game
	thinking sync.Mutex
}

type GameManager struct {
	games    map[string]*seat
	settings EngineSettings
	seeds    *rand.Rand
	mu       sync.RWMutex
}

func NewGameManager(settings EngineSettings) *GameManager {
	if settings.Depth < 1 {
		settings.Depth = engine.DefaultDepth
	}
	if settings.Promotion == 0 {
		settings.Promotion = 'q'
	}
	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &GameManager{
		games:    make(map[string]*seat),
		settings: settings,
		seeds:    rand.New(rand.NewSource(seed)),
	}
}

// CreateGame seats the human with color in a new game starting from pos.
func (gm *GameManager) CreateGame(human model.Player, pos model.Position) *model.Game {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	gameID := uuid.New().String()
	pos.SetPromotion(gm.settings.Promotion)
	game := model.NewGameFromPosition(gameID, human, pos)

	searcher := engine.NewSearcher(
		rand.New(rand.NewSource(gm.seeds.Uint64())),
		engine.WithDepth(gm.settings.Depth),
		engine.WithPruning(gm.settings.Pruning),
	)
	gm.games[gameID] = &seat{game: game, searcher: searcher}
	log.Printf("created game %s: player %s plays %s", gameID, human.ID, human.Color)
	return game
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	s, err := gm.seat(gameID)
	if err != nil {
		return nil, err
	}
	return s.game, nil
}

func (gm *GameManager) seat(gameID string) (*seat, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return s, nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// MakeMove applies the human's move and, if the game goes on, the engine's
// reply.
func (gm *GameManager) MakeMove(gameID, playerID string, move model.Move, promotion byte) error {
	s, err := gm.seat(gameID)
	if err != nil {
		return err
	}
	if !s.game.IsPlayerInGame(playerID) {
		return model.ErrNotInGame
	}
	if s.game.Status().Terminal() {
		return ErrGameOver
	}
	if s.game.EngineToMove() {
		return ErrNotYourTurn
	}
	if err := s.game.MakeMove(playerID, move, promotion); err != nil {
		return err
	}
	gm.playEngine(s)
	return nil
}

// PlayEngine lets the engine move if it is on turn.
func (gm *GameManager) PlayEngine(gameID string) error {
	s, err := gm.seat(gameID)
	if err != nil {
		return err
	}
	gm.playEngine(s)
	return nil
}

func (gm *GameManager) playEngine(s *seat) {
	s.thinking.Lock()
	defer s.thinking.Unlock()

	for s.game.EngineToMove() {
		pos := s.game.Position()
		start := time.Now()
		s.searcher.ResetNodes()
		move, ok := s.searcher.ChooseMove(pos, pos.Turn)
		if !ok {
			return
		}
		if err := s.game.ApplyEngineMove(move); err != nil {
			log.Printf("game %s: engine move %s rejected: %v", s.game.ID, move, err)
			return
		}
		log.Printf("game %s: engine played %s (%d nodes, %s)", s.game.ID, move, s.searcher.Nodes(), time.Since(start).Round(time.Millisecond))
	}
}

func (gm *GameManager) SetPromotion(gameID, playerID string, choice byte) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.SetPromotion(playerID, choice)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

func (gm *GameManager) SendError(gameID, playerID, text string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.SendError(playerID, text)
}
