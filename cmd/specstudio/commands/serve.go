package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ziahq/specstudio/service"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		storeDir   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor backend service",
		Long:  "Run the SpecStudio HTTP service: validation, rendering, import,\ndocument persistence, and live validation over WebSocket.\n\nConfiguration is read from the optional config file, then from\nSPECSTUDIO_* environment variables, then from flags.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := service.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if storeDir != "" {
				cfg.StoreDir = storeDir
			}

			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
			}
			log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

			svc, err := service.New(cfg, log)
			if err != nil {
				return fmt.Errorf("starting service: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return svc.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&storeDir, "store-dir", "", "directory for document persistence (overrides config)")
	return cmd
}
