package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/aryavsaigal/rbcb/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	manager := service.NewGameManager(service.EngineSettings{Depth: 1, Pruning: true, Seed: 1, Color: model.Black})
	RegisterRoutes(app, service.NewGameService(manager), nil)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", "alice")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

type createResponse struct {
	GameID string          `json:"game_id"`
	Color  string          `json:"color"`
	State  model.GameState `json:"state"`
}

func createGame(t *testing.T, app *fiber.App, body string) createResponse {
	t.Helper()
	code, data := do(t, app, http.MethodPost, "/api/game/create", body)
	if code != fiber.StatusCreated {
		t.Fatalf("create: status %d: %s", code, data)
	}
	var resp createResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateAndMove(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white"}`)
	if created.Color != "white" || created.State.Ply != 0 {
		t.Fatalf("unexpected create response %+v", created)
	}

	code, data := do(t, app, http.MethodPost, "/api/game/"+created.GameID+"/move", `{"move":"e2e4"}`)
	if code != fiber.StatusOK {
		t.Fatalf("move: status %d: %s", code, data)
	}
	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Ply != 2 || state.ToMove != model.White {
		t.Fatalf("expected the engine to have replied, got ply %d %s to move", state.Ply, state.ToMove)
	}
	if len(state.MoveHistory) != 2 || state.MoveHistory[0].Notation != "e2e4" {
		t.Fatalf("unexpected history %+v", state.MoveHistory)
	}

	code, data = do(t, app, http.MethodGet, "/api/game/"+created.GameID, "")
	if code != fiber.StatusOK || !strings.Contains(string(data), `"ply":2`) {
		t.Fatalf("get state: status %d: %s", code, data)
	}
}

func TestEngineMovesFirstAsWhite(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"black"}`)
	if created.State.Ply != 1 || created.State.ToMove != model.Black {
		t.Fatalf("expected the engine to open, got %+v", created.State)
	}
}

func TestMoveErrors(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white"}`)
	base := "/api/game/" + created.GameID

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"Illegal", base + "/move", `{"move":"e2e5"}`, fiber.StatusUnprocessableEntity},
		{"Malformed", base + "/move", `{"move":"e2"}`, fiber.StatusUnprocessableEntity},
		{"EmptySource", base + "/move", `{"move":"e3e4"}`, fiber.StatusUnprocessableEntity},
		{"NotFound", "/api/game/nope/move", `{"move":"e2e4"}`, fiber.StatusNotFound},
		{"BadBody", base + "/move", `{`, fiber.StatusBadRequest},
		{"BadPromotion", base + "/promotion", `{"piece":"k"}`, fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := do(t, app, http.MethodPost, tt.target, tt.body)
			if code != tt.want {
				t.Fatalf("status %d, want %d: %s", code, tt.want, data)
			}
			if !strings.Contains(string(data), `"error"`) {
				t.Fatalf("expected an error body, got %s", data)
			}
		})
	}
}

func TestOtherPlayerCannotMove(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/game/"+created.GameID+"/move", strings.NewReader(`{"move":"e2e4"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", "mallory")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestLegalMovesAndPromotion(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white"}`)
	base := "/api/game/" + created.GameID

	code, data := do(t, app, http.MethodGet, base+"/moves/g1", "")
	if code != fiber.StatusOK {
		t.Fatalf("moves: status %d: %s", code, data)
	}
	var moves struct {
		From         string         `json:"from"`
		Destinations []model.Square `json:"destinations"`
	}
	if err := json.Unmarshal(data, &moves); err != nil {
		t.Fatalf("decode moves: %v", err)
	}
	if len(moves.Destinations) != 2 {
		t.Fatalf("expected 2 knight moves from g1, got %v", moves.Destinations)
	}

	code, data = do(t, app, http.MethodGet, base+"/moves/z9", "")
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a bad square, got %d: %s", code, data)
	}

	code, data = do(t, app, http.MethodPost, base+"/promotion", `{"piece":"n"}`)
	if code != fiber.StatusOK || !strings.Contains(string(data), `"promotion":"n"`) {
		t.Fatalf("promotion: status %d: %s", code, data)
	}
}

func TestCreateFromFENAndPGN(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white","fen":"7k/6pp/8/8/8/8/8/K3R3 w - - 0 1"}`)
	base := "/api/game/" + created.GameID

	code, data := do(t, app, http.MethodPost, base+"/move", `{"move":"e1e8"}`)
	if code != fiber.StatusOK || !strings.Contains(string(data), string(model.StatusBlackCheckmate)) {
		t.Fatalf("mating move: status %d: %s", code, data)
	}

	code, data = do(t, app, http.MethodPost, base+"/move", `{"move":"a1a2"}`)
	if code != fiber.StatusConflict {
		t.Fatalf("expected 409 after mate, got %d: %s", code, data)
	}

	code, data = do(t, app, http.MethodGet, base+"/pgn", "")
	if code != fiber.StatusOK || !strings.Contains(string(data), "Re8#") || !strings.Contains(string(data), "1-0") {
		t.Fatalf("pgn: status %d: %s", code, data)
	}

	code, _ = do(t, app, http.MethodPost, "/api/game/create", `{"fen":"not a fen"}`)
	if code != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a bad FEN, got %d", code)
	}
	code, _ = do(t, app, http.MethodPost, "/api/game/create", `{"color":"purple"}`)
	if code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a bad color, got %d", code)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	created := createGame(t, app, `{"color":"white"}`)
	code, _ := do(t, app, http.MethodGet, "/ws/game/"+created.GameID, "")
	if code != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", code)
	}
}
