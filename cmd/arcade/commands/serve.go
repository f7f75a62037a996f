package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mparcade/internal/arcade"
	"mparcade/internal/engine"
	"mparcade/internal/events"
	"mparcade/internal/mp"
	"mparcade/internal/network"
	"mparcade/internal/services/cluster"
)

func serveCmd() *cobra.Command {
	var addr, natsURL, consulAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the arena headless and accept remote controllers over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.WSAddr = addr
			}
			if flags.Changed("nats") {
				cfg.NatsURL = natsURL
			}
			if flags.Changed("consul") {
				cfg.ConsulAddr = consulAddr
			}
			port, err := cfg.Port()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			health := cluster.NewHealthAggregator()
			opts := []mp.Option{mp.WithLogger(log)}

			if cfg.NatsURL != "" {
				nc, err := events.Connect(cfg.NatsURL, cfg.ServiceName, log)
				if err != nil {
					return err
				}
				defer nc.Drain()
				opts = append(opts, mp.WithObserver(events.NewPublisher(nc, cfg.SubjectPrefix, log)))
				health.AddCheck("nats", func() error {
					if !nc.IsConnected() {
						return fmt.Errorf("nats %s", nc.Status())
					}
					return nil
				})
			}

			game := engine.NewGame()
			mgr := mp.New(game, opts...)
			arena := arcade.NewArena(game, mgr, uint64(time.Now().UnixNano()), log)
			heartbeat := cluster.NewHeartbeat()
			health.AddCheck("loop", heartbeat.Check(time.Second))

			var srv *network.Server
			loop := arcade.NewLoop(game, mgr, cfg.TickInterval(),
				arcade.WithLoopLogger(log),
				arcade.WithUpdate(arena.Update),
				arcade.WithTickHook(heartbeat.Beat),
				arcade.WithStateHandler(cfg.TickHz/cfg.BroadcastHz, func(st network.StatePayload) {
					msg, err := network.NewMessage(network.MsgState, st)
					if err != nil {
						log.Error().Err(err).Msg("encoding state")
						return
					}
					srv.Hub().Broadcast(msg)
				}),
			)
			srv = network.NewServer(network.NewLobby(loop.Sink(), log), log)
			srv.Mux().HandleFunc("/health", health.Handler())

			arena.Start()

			if cfg.ConsulAddr != "" {
				reg, err := cluster.RegisterService(cfg.ServiceName, port, cfg.ConsulAddr, log)
				if err != nil {
					log.Warn().Err(err).Msg("running without consul registration")
				} else {
					defer reg.Deregister()
				}
			}

			go loop.Run(ctx)
			if err := srv.Listen(ctx, cfg.WSAddr); err != nil {
				return fmt.Errorf("serving %s: %w", cfg.WSAddr, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ARCADE_WS_ADDR)")
	cmd.Flags().StringVar(&natsURL, "nats", "", "NATS url for the event mirror (overrides NATS_URL)")
	cmd.Flags().StringVar(&consulAddr, "consul", "", "consul agents, comma separated (overrides CONSUL_HTTP_ADDR)")
	return cmd
}
