package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/aryavsaigal/rbcb/internal/service"
	"github.com/aryavsaigal/rbcb/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		if !errors.Is(err, model.ErrAlreadyConnected) {
			writeError(c, err.Error())
			c.Close()
		}
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			wsc.sendError(gameID, playerID, "malformed message")
			continue
		}

		// accepted moves reach every observer through the game's broadcast
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(gameID, playerID, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var payload ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, payload.Move)
		return err

	case ws.MessageTypePromotion:
		var payload ws.PromotionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}
		_, err := wsc.gameService.SetPromotion(gameID, playerID, payload.Piece)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// sendError shares the game's writer with state broadcasts.
func (wsc *WebSocketController) sendError(gameID, playerID, errorMsg string) {
	if err := wsc.gameService.SendError(gameID, playerID, errorMsg); err != nil {
		log.Printf("failed to send error: %v", err)
	}
}

// writeError is only for connections that never got registered, so nothing
// else can be writing to them.
func writeError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: payload,
	}); err != nil {
		log.Printf("failed to send error: %v", err)
	}
}
