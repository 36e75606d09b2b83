package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/mathfield/internal/engine/arena"
	"github.com/dshills/mathfield/internal/engine/render"
)

// FormulaOrigin is where the top left corner of the formula is drawn.
var FormulaOrigin = render.Point{X: 2, Y: 1}

var statusStyle = tcell.StyleDefault.Reverse(true)

// Draw paints the formula, the cursor and the status line.
func (app *Application) Draw() {
	app.mu.Lock()
	screen := app.screen
	status := app.status
	app.mu.Unlock()
	if screen == nil {
		return
	}

	screen.Clear()
	width, height := screen.Size()

	app.field.View(func(s *arena.Stack, root arena.Node, f render.Frame) {
		app.cells.Draw(screen, s, root, FormulaOrigin, f)
	})

	c := FormulaOrigin.Add(app.field.CursorOrigin())
	screen.ShowCursor(c.X, c.Y+(app.field.CursorHeight()-1)/2)

	if height > 0 {
		line := app.statusLine(status)
		for x := 0; x < width; x++ {
			screen.SetContent(x, height-1, ' ', nil, statusStyle)
		}
		drawText(screen, 1, height-1, width, line, statusStyle)
	}

	screen.Show()
}

func (app *Application) statusLine(status string) string {
	f := app.field
	line := fmt.Sprintf("%d/%d blocks  undo %d", f.Len(), f.Capacity(), f.UndoCount())
	if f.IsReadOnly() {
		line += "  [read only]"
	}
	if status != "" {
		line += "  " + status
	}
	return line
}

// drawText writes text from x, one grapheme cluster per cell run, stopping
// before maxX.
func drawText(cv render.Canvas, x, y, maxX int, text string, style tcell.Style) int {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		cv.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}
