package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jayra/tradebot/internal/config"
	"github.com/jayra/tradebot/internal/logger"
	"github.com/jayra/tradebot/internal/mcp"
	"github.com/jayra/tradebot/pkg/kite"
	"github.com/jayra/tradebot/pkg/session"
	"github.com/jayra/tradebot/pkg/tools"
)

// serverName is the MCP server identity reported during the initialize
// handshake.
const serverName = "trading-bot"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP trading server on stdio",
	Long: `Serve speaks the Model Context Protocol on stdin/stdout. Point an AI
agent at this command to give it the trading toolset. Logs go to stderr
and the log file; stdout carries only protocol frames.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	lg, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer lg.Close()

	// Log-level edits in the config file take effect without a restart.
	loader.Watch(func(fresh *config.Config) {
		lg.SetLevel(fresh.Logging.Level)
	})

	if !cfg.HasCredentials() {
		// The catalog still lists; gateway-dependent tools will fail with
		// an authentication error until credentials are provided.
		log.Warn().Msg("KITE_API_KEY/KITE_API_SECRET not set; trading tools will fail until configured")
	}

	client := kite.NewClient(cfg.Kite.APIKey, cfg.Kite.APISecret)
	store := session.NewStore(client)
	handlers := tools.NewHandlers(client, store)

	registry := tools.NewRegistry()
	if err := registry.RegisterAll(tools.Catalog(handlers)); err != nil {
		return fmt.Errorf("failed to build tool catalog: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(serverName, version, registry, os.Stdin, os.Stdout)
	return server.Run(ctx)
}
