package term

import (
	"fmt"
	"strings"

	"mparcade/internal/network"
)

const statusColumn = 16

// Status renders a one line scoreboard, one fixed width column per player in
// play.
func Status(st network.StatePayload) string {
	var b strings.Builder
	for _, p := range st.Players {
		if !p.Assigned {
			continue
		}
		b.WriteString(Pad(fmt.Sprintf("P%d ♥%d ★%d", p.Player, p.Life, p.Score), statusColumn))
	}
	return strings.TrimRight(b.String(), " ")
}
