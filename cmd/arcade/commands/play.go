package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mparcade/internal/arcade"
	"mparcade/internal/engine"
	"mparcade/internal/logging"
	"mparcade/internal/mp"
	"mparcade/internal/term"
)

func playCmd() *cobra.Command {
	var (
		players int
		logFile string
		hold    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the arena in this terminal (P1: WASD F G, P2: arrows K L, Esc quits)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if players < 1 || players > 2 {
				return fmt.Errorf("play supports 1 or 2 local players, got %d", players)
			}
			// The terminal is the screen, so logs go to a file or nowhere.
			plog := zerolog.Nop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				plog = logging.NewWithWriter(f, cfg.LogLevel)
			}

			game := engine.NewGame()
			mgr := mp.New(game, mp.WithLogger(plog))
			arena := arcade.NewArena(game, mgr, uint64(time.Now().UnixNano()), plog)

			var screen *term.Screen
			var loop *arcade.Loop
			loop = arcade.NewLoop(game, mgr, cfg.TickInterval(),
				arcade.WithLoopLogger(plog),
				arcade.WithUpdate(arena.Update),
				arcade.WithFrameHandler(func(img *engine.Image) {
					screen.Frame(img, term.Status(loop.Snapshot()))
				}),
			)

			screen, err := term.Open(loop.Sink(), hold, plog)
			if err != nil {
				return err
			}
			defer screen.Close()

			slots := mp.AllPlayers()[:players]
			arena.Start(slots...)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go screen.Poll(ctx, cancel)
			loop.Run(ctx)
			return nil
		},
	}
	cmd.Flags().IntVarP(&players, "players", "n", 2, "local players (1 or 2)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	cmd.Flags().IntVar(&hold, "hold-frames", term.DefaultHoldFrames, "frames a key stays held after its last repeat")
	return cmd
}
