// Command simple-bot joins an arcade server as a remote controller and mashes
// random buttons. Run a few of them to fill the player slots.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mparcade/internal/logging"
	"mparcade/internal/mp"
	"mparcade/internal/network"
	"mparcade/internal/services/cluster"
)

func main() {
	var (
		addr     string
		consul   string
		service  string
		player   int
		interval time.Duration
		level    string
	)
	root := &cobra.Command{
		Use:          "simple-bot",
		Short:        "Remote controller bot for the arcade server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.Component(logging.New(level, true), "bot")
			if consul != "" {
				found, err := cluster.Discover(service, consul, log)
				if err != nil {
					return err
				}
				addr = found
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return run(ctx, addr, player, interval, log)
		},
	}
	root.Flags().StringVar(&addr, "addr", "localhost:8080", "server host:port")
	root.Flags().StringVar(&consul, "consul", "", "discover the server through these consul agents")
	root.Flags().StringVar(&service, "service", "mparcade", "consul service name")
	root.Flags().IntVar(&player, "player", 0, "slot to ask for (0 = first free)")
	root.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "time between button changes")
	root.Flags().StringVar(&level, "log-level", "info", "log level")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, player int, interval time.Duration, log zerolog.Logger) error {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", u.String(), err)
	}
	defer conn.Close()

	// --- Etapa 1: JOIN ---
	join, _ := network.NewMessage(network.MsgJoin, network.JoinPayload{Player: player})
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("sending join: %w", err)
	}
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	var reply network.Message
	if err := conn.ReadJSON(&reply); err != nil {
		return fmt.Errorf("waiting for welcome: %w", err)
	}
	switch reply.Type {
	case network.MsgWelcome:
		w, err := network.DecodePayload[network.WelcomePayload](reply)
		if err != nil {
			return err
		}
		log = log.With().Int("player", w.Player).Logger()
		log.Info().Str("client", w.ClientID).Msg("joined")
	case network.MsgError:
		e, _ := network.DecodePayload[network.ErrorPayload](reply)
		return fmt.Errorf("join refused: %s", e.Message)
	default:
		return fmt.Errorf("unexpected %s before welcome", reply.Type)
	}
	conn.SetReadDeadline(time.Time{})

	// Lê os STATE em segundo plano; erro de leitura encerra o bot.
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg network.Message
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			if msg.Type != network.MsgState {
				continue
			}
			st, err := network.DecodePayload[network.StatePayload](msg)
			if err != nil {
				continue
			}
			log.Debug().Uint64("tick", st.Tick).Interface("players", st.Players).Msg("state")
		}
	}()

	// --- Etapa 2: aperta e solta botões aleatórios ---
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	held := make(map[mp.Button]bool)
	for {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
			return nil
		case err := <-readErr:
			return fmt.Errorf("connection lost: %w", err)
		case <-ticker.C:
			b := mp.Button(rand.IntN(int(mp.Left) + 1))
			held[b] = !held[b]
			msg, _ := network.NewMessage(network.MsgButton, network.ButtonPayload{Button: b.String(), Pressed: held[b]})
			if err := conn.WriteJSON(msg); err != nil {
				return fmt.Errorf("sending button: %w", err)
			}
		}
	}
}
