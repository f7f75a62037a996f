// Package term is the local terminal front end: it paints engine frames with
// termbox and feeds the keyboard into the input queue.
package term

import (
	"context"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	"github.com/rs/zerolog"

	"mparcade/internal/engine"
	"mparcade/internal/network"
)

type Screen struct {
	kb  *Keyboard
	log zerolog.Logger
}

// Open initialises the terminal. Call Close to restore it.
func Open(sink network.InputSink, holdFrames int, log zerolog.Logger) (*Screen, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal: %w", err)
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.SetInputMode(termbox.InputEsc)
	return &Screen{
		kb:  NewKeyboard(sink, holdFrames),
		log: log.With().Str("component", "term").Logger(),
	}, nil
}

func (s *Screen) Close() { termbox.Close() }

// Poll reads keyboard events until ctx ends or the user quits with Esc or
// Ctrl-C, in which case quit is called.
func (s *Screen) Poll(ctx context.Context, quit func()) {
	go func() {
		<-ctx.Done()
		termbox.Interrupt()
	}()
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			s.log.Error().Err(ev.Err).Msg("terminal input failed")
			quit()
			return
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				quit()
				return
			}
			if p, b, ok := Lookup(ev); ok {
				s.kb.Press(p, b)
			}
		}
	}
}

// Frame ages the held keys and paints img with status below it. Call it from
// the loop goroutine once per frame.
func (s *Screen) Frame(img *engine.Image, status string) {
	s.kb.Tick()
	Paint(img)
	DrawText(0, (img.Height()+1)/2, status, termbox.ColorWhite, termbox.ColorDefault)
	if err := termbox.Flush(); err != nil {
		s.log.Warn().Err(err).Msg("flush failed")
	}
}

// Paint writes img into the termbox back buffer, two pixel rows per cell,
// clipped to the terminal size.
func Paint(img *engine.Image) {
	tw, th := termbox.Size()
	for row := 0; row < (img.Height()+1)/2 && row < th; row++ {
		for x := 0; x < img.Width() && x < tw; x++ {
			c := Cell(img.Pixel(x, 2*row), img.Pixel(x, 2*row+1))
			termbox.SetCell(x, row, c.Ch, c.Fg, c.Bg)
		}
	}
}

// DrawText writes text starting at column x, advancing by the display width
// of each rune.
func DrawText(x, y int, text string, fg, bg termbox.Attribute) int {
	for _, r := range text {
		termbox.SetCell(x, y, r, fg, bg)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// Pad right pads text with spaces to width display columns.
func Pad(text string, width int) string {
	return runewidth.FillRight(text, width)
}
