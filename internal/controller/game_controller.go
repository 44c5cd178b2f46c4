package controller

import (
	"errors"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/aryavsaigal/rbcb/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Color string `json:"color"`
	FEN   string `json:"fen"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

// statusFor maps service and rule errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, model.ErrWrongTurn):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrEmptySource),
		errors.Is(err, model.ErrSameColorCapture),
		errors.Is(err, model.ErrShapeIllegal),
		errors.Is(err, model.ErrExposesOwnKing),
		errors.Is(err, model.ErrInvalidPromotionChoice),
		errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, model.ErrMalformedMoveText),
		errors.Is(err, model.ErrMalformedFEN):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusBadRequest
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	state, err := gc.gameService.CreateGame(playerID, req.Color, req.FEN)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": state.ID,
		"color":   state.Players.Human.Color,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), playerID, req.Move)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) SetPromotion(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	state, err := gc.gameService.SetPromotion(c.Params("gameId"), playerID, req.Piece)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	dests, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from":         square,
		"destinations": dests,
	})
}

func (gc *GameController) GetPGN(c *fiber.Ctx) error {
	pgn, err := gc.gameService.PGN(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/x-chess-pgn")
	return c.SendString(pgn)
}
