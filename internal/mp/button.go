package mp

import (
	"fmt"
	"strings"

	"mparcade/internal/engine"
)

type Button int

const (
	A Button = iota
	B
	Up
	Right
	Down
	Left
)

var buttonNames = [...]string{"A", "B", "up", "right", "down", "left"}

func (b Button) String() string {
	if b < A || b > Left {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// ParseButton accepts the names produced by String, case insensitively.
func ParseButton(s string) (Button, error) {
	for i, n := range buttonNames {
		if strings.EqualFold(n, s) {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("unknown button %q", s)
}

func buttonOf(c *engine.Controller, b Button) *engine.Button {
	if c == nil {
		return nil
	}
	switch b {
	case A:
		return c.A
	case B:
		return c.B
	case Up:
		return c.Up
	case Right:
		return c.Right
	case Down:
		return c.Down
	case Left:
		return c.Left
	}
	return nil
}
