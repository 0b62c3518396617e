package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trueinfluence/writeit/internal/config"
	"github.com/trueinfluence/writeit/internal/generate"
	"github.com/trueinfluence/writeit/internal/logger"
	"github.com/trueinfluence/writeit/internal/server"
)

var (
	serveListen    string
	serveLogPath   string
	serveBundleDir string
	serveModel     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation server",
	Long: `Serves POST /api/write/{slug}, GET /healthz and GET /metrics.

Voice bundles are read from <bundle_dir>/<slug>/voice_profile.json and
manifest.json. The API key is taken from ` + config.EnvAPIKey + `.

Examples:
  writeit serve                        # Listen on the configured address
  writeit serve --listen :9000         # Override the listen address
  writeit serve --log /var/log/w.log   # Log somewhere other than /tmp`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config, "+config.DefaultListen+")")
	serveCmd.Flags().StringVar(&serveLogPath, "log", logger.ServerLogPath, "Log file")
	serveCmd.Flags().StringVar(&serveBundleDir, "bundle-dir", "", "Directory of voice bundles (default from config)")
	serveCmd.Flags().StringVar(&serveModel, "model", "", "Chat model (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// serverSettings merges the config's server section with the command flags.
func serverSettings(cfg *config.Config) config.ServerConfig {
	sc := cfg.GetServer()
	if serveListen != "" {
		sc.Listen = serveListen
	}
	if serveBundleDir != "" {
		sc.BundleDir = serveBundleDir
	}
	if serveModel != "" {
		sc.Model = serveModel
	}
	return sc
}

// newServer wires the generator and the HTTP server for sc.
func newServer(sc config.ServerConfig, apiKey string) *server.Server {
	gen := generate.NewGenerator(
		generate.NewOpenAIClient(apiKey, sc.BaseURL),
		generate.NewVoiceStore(sc.BundleDir),
		sc.Model,
	)
	return server.New(gen, server.Options{
		RatePerMinute: sc.RatePerMinute,
		Burst:         sc.Burst,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logger.Init(serveLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc := serverSettings(cfg)

	log := logger.ComponentLogger("Serve")
	apiKey := config.APIKey()
	if apiKey == "" {
		log.Warn("no API key; every generation will fail", "env", config.EnvAPIKey)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s is not set; generation requests will fail\n", config.EnvAPIKey)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	log.Info("starting", "listen", sc.Listen, "model", sc.Model, "bundle_dir", sc.BundleDir)
	fmt.Fprintf(cmd.OutOrStdout(), "writeit serving on %s (logs: %s)\n", sc.Listen, logger.Path())
	return newServer(sc, apiKey).Run(ctx, sc.Listen)
}
