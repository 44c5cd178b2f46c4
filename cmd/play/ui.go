package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/aryavsaigal/rbcb/internal/engine"
	"github.com/aryavsaigal/rbcb/internal/model"
)

var (
	lightSquare = tcell.StyleDefault.Background(tcell.ColorTan).Foreground(tcell.ColorBlack)
	darkSquare  = tcell.StyleDefault.Background(tcell.ColorSaddleBrown).Foreground(tcell.ColorBlack)
	whitePiece  = tcell.ColorWhite
	blackPiece  = tcell.ColorBlack
	textStyle   = tcell.StyleDefault
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// ui is the terminal session: one position, the human's side and the
// engine playing the other.
type ui struct {
	screen   tcell.Screen
	pos      model.Position
	human    model.Color
	searcher *engine.Searcher
	input    []rune
	lastErr  string
	lastMove string
}

func (u *ui) run() {
	u.draw()
	u.playEngine()

	for {
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyEnter:
				u.submit(strings.TrimSpace(string(u.input)))
				u.input = u.input[:0]
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(u.input) > 0 {
					u.input = u.input[:len(u.input)-1]
				}
			case tcell.KeyRune:
				if len(u.input) < 5 {
					u.input = append(u.input, ev.Rune())
				}
			}
		}
		u.draw()
		u.playEngine()
	}
}

// submit handles one line of input: a single promotion character or a move.
func (u *ui) submit(text string) {
	u.lastErr = ""
	if u.pos.Classify().Terminal() {
		u.lastErr = "game is over, press Esc to quit"
		return
	}
	if len(text) == 1 {
		if !model.ValidPromotion(text[0]) {
			u.lastErr = fmt.Sprintf("%v: %q", model.ErrInvalidPromotionChoice, text)
			return
		}
		u.pos.SetPromotion(text[0])
		return
	}
	if u.pos.Turn != u.human {
		u.lastErr = "engine is thinking"
		return
	}
	move, promotion, err := model.ParseUCI(text)
	if err != nil {
		u.lastErr = err.Error()
		return
	}
	if promotion != 0 {
		u.pos.SetPromotion(promotion)
	}
	if err := u.pos.Apply(move); err != nil {
		u.lastErr = err.Error()
		return
	}
	u.lastMove = move.String()
}

func (u *ui) playEngine() {
	for u.pos.Turn != u.human && !u.pos.Classify().Terminal() {
		u.lastErr = ""
		u.status("engine is thinking...")
		move, ok := u.searcher.ChooseMove(u.pos, u.pos.Turn)
		if !ok {
			return
		}
		if err := u.pos.Apply(move); err != nil {
			u.lastErr = err.Error()
			return
		}
		u.lastMove = move.String()
		u.draw()
	}
}

func (u *ui) draw() {
	u.screen.Clear()

	// rank 8 at the top, or rank 1 when the human plays black
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if u.human == model.Black {
			rank = row
		}
		u.text(0, row+1, textStyle, fmt.Sprintf("%d", rank+1))
		for col := 0; col < 8; col++ {
			file := col
			if u.human == model.Black {
				file = 7 - col
			}
			style := darkSquare
			if (rank+file)%2 == 1 {
				style = lightSquare
			}
			piece := u.pos.Board[rank][file]
			if piece.Color == model.White {
				style = style.Foreground(whitePiece)
			} else {
				style = style.Foreground(blackPiece)
			}
			x := 2 + col*3
			u.screen.SetContent(x, row+1, ' ', nil, style)
			u.screen.SetContent(x+1, row+1, rune(piece.Symbol()), nil, style)
			u.screen.SetContent(x+2, row+1, ' ', nil, style)
		}
	}
	for col := 0; col < 8; col++ {
		file := col
		if u.human == model.Black {
			file = 7 - col
		}
		u.text(3+col*3, 9, textStyle, string(rune('a'+file)))
	}

	status := u.pos.Classify()
	u.text(28, 1, textStyle, fmt.Sprintf("ply %d, %s to move", u.pos.Ply, u.pos.Turn))
	u.text(28, 2, textStyle, status.Label())
	u.text(28, 3, textStyle, fmt.Sprintf("promotion: %c", u.pos.Promotion))
	if u.lastMove != "" {
		u.text(28, 4, textStyle, "last move: "+u.lastMove)
	}
	if u.lastErr != "" {
		u.text(0, 11, errorStyle, u.lastErr)
	}
	u.text(0, 12, textStyle, "move (e2e4) or promotion piece (q/r/b/n), Esc quits")
	u.text(0, 13, textStyle, "> "+string(u.input))
	u.screen.ShowCursor(2+len(u.input), 13)
	u.screen.Show()
}

func (u *ui) status(msg string) {
	u.text(28, 5, textStyle, msg)
	u.screen.Show()
}

func (u *ui) text(x, y int, style tcell.Style, s string) {
	for i, r := range s {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}
