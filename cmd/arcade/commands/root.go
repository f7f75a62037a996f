package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mparcade/internal/config"
	"mparcade/internal/logging"
)

var (
	envFile  string
	logLevel string
	pretty   bool
	tickHz   int

	cfg *config.Config
	log zerolog.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:          "arcade",
		Short:        "Multiplayer arcade arena, local or served to remote controllers",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			c, err := config.Load(files...)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				c.LogLevel = logLevel
			}
			if flags.Changed("pretty") {
				c.PrettyLogs = pretty
			}
			if flags.Changed("tick-hz") && tickHz > 0 {
				c.TickHz = tickHz
			}
			cfg = c
			log = logging.New(cfg.LogLevel, cfg.PrettyLogs)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&pretty, "pretty", false, "human readable logs")
	root.PersistentFlags().IntVar(&tickHz, "tick-hz", 30, "game loop frames per second")

	root.AddCommand(playCmd(), serveCmd())
	return root.Execute()
}
