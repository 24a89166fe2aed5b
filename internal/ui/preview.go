package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/HexSleeves/dungeon-forge/internal/engine"
	"github.com/HexSleeves/dungeon-forge/internal/graph"
	"github.com/HexSleeves/dungeon-forge/internal/layout"
)

// Previewer renders generated layouts as scaled rectangles in the terminal
// and lets the user step through seeds.
type Previewer struct {
	screen    *Screen
	generator *graph.Generator
	params    map[string]any
	seed      uint64
	running   bool
}

// NewPreviewer creates a previewer. generator may be nil, in which case the
// fallback pipeline is previewed.
func NewPreviewer(screen *Screen, generator *graph.Generator, params map[string]any, seed uint64) *Previewer {
	return &Previewer{
		screen:    screen,
		generator: generator,
		params:    params,
		seed:      seed,
		running:   true,
	}
}

// Run executes the preview loop: generate for the current seed, draw, wait
// for input. n/p step the seed, q or escape quits.
func (p *Previewer) Run(ctx context.Context) error {
	for p.running {
		result := engine.Generate(ctx, engine.Request{
			Seed:       p.seed,
			Generator:  p.generator,
			Parameters: p.params,
		})
		p.render(result)
		p.handleInput()
	}

	p.screen.Close()
	return nil
}

func (p *Previewer) handleInput() {
	ev := p.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			p.running = false
		case tcell.KeyRight:
			p.seed++
		case tcell.KeyLeft:
			if p.seed > 0 {
				p.seed--
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				p.running = false
			case 'n', 'N':
				p.seed++
			case 'p', 'P':
				if p.seed > 0 {
					p.seed--
				}
			}
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
}

// render draws the layout scaled to fit the terminal, with a status line at
// the bottom.
func (p *Previewer) render(result engine.Result) {
	p.screen.Clear()

	width, height := p.screen.Size()
	mapHeight := height - 1
	if mapHeight < 1 || result.Data == nil {
		return
	}

	data := result.Data
	world := data.Bounds()
	toCell := cellMapper(world, width, mapHeight)

	for i := range data.Rooms {
		p.drawRoom(&data.Rooms[i], toCell)
	}

	doorStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for _, conn := range data.Connections {
		fx, fy := toCell(conn.FromDoor)
		tx, ty := toCell(conn.ToDoor)
		p.screen.SetContent(fx, fy, '+', doorStyle)
		p.screen.SetContent(tx, ty, '+', doorStyle)
	}

	spawnStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	for _, sp := range data.SpawnPoints {
		x, y := toCell(sp.Position)
		p.screen.SetContent(x, y, '*', spawnStyle)
	}

	startStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	sx, sy := toCell(data.PlayerStart)
	p.screen.SetContent(sx, sy, '@', startStyle)

	status := fmt.Sprintf("seed %d | rooms %d | connections %d | spawns %d | success %v | n/p step, q quit",
		result.Seed, len(data.Rooms), len(data.Connections), len(data.SpawnPoints), result.Success)
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range status {
		if i >= width {
			break
		}
		p.screen.SetContent(i, height-1, ch, statusStyle)
	}

	p.screen.Show()
}

func (p *Previewer) drawRoom(room *layout.Room, toCell func(layout.Point) (int, int)) {
	b := room.Bounds
	x0, y0 := toCell(layout.Point{X: b.X, Y: b.Y})
	x1, y1 := toCell(layout.Point{X: b.X + b.Width, Y: b.Y + b.Height})
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	style := tcell.StyleDefault.Foreground(roomColor(room.Type))
	for x := x0; x <= x1; x++ {
		p.screen.SetContent(x, y0, tcell.RuneHLine, style)
		p.screen.SetContent(x, y1, tcell.RuneHLine, style)
	}
	for y := y0; y <= y1; y++ {
		p.screen.SetContent(x0, y, tcell.RuneVLine, style)
		p.screen.SetContent(x1, y, tcell.RuneVLine, style)
	}
	p.screen.SetContent(x0, y0, tcell.RuneULCorner, style)
	p.screen.SetContent(x1, y0, tcell.RuneURCorner, style)
	p.screen.SetContent(x0, y1, tcell.RuneLLCorner, style)
	p.screen.SetContent(x1, y1, tcell.RuneLRCorner, style)

	// Room type initial just inside the corner
	if len(room.Type) > 0 && x1 > x0+1 && y1 > y0+1 {
		p.screen.SetContent(x0+1, y0+1, rune(room.Type[0]), style.Bold(true))
	}
}

// cellMapper returns a function projecting world coordinates onto terminal
// cells, preserving aspect by scaling each axis independently to fit.
func cellMapper(world layout.Rect, width, height int) func(layout.Point) (int, int) {
	scaleX, scaleY := 1.0, 1.0
	if world.Width > 0 {
		scaleX = float64(width-1) / world.Width
	}
	if world.Height > 0 {
		scaleY = float64(height-1) / world.Height
	}

	return func(pt layout.Point) (int, int) {
		x := int((pt.X - world.X) * scaleX)
		y := int((pt.Y - world.Y) * scaleY)
		if x < 0 {
			x = 0
		}
		if x > width-1 {
			x = width - 1
		}
		if y < 0 {
			y = 0
		}
		if y > height-1 {
			y = height - 1
		}
		return x, y
	}
}
