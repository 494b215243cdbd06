package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Ning0612/drawfolders/internal/adapter/local"
	"github.com/Ning0612/drawfolders/internal/config"
	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/engine"
	"github.com/Ning0612/drawfolders/internal/logger"
)

var (
	configPath   string
	rootName     string
	rootPath     string
	outputFormat string
	logLevel     string

	cfg  *config.Config
	root *domain.Root
	eng  *engine.Engine
)

// annotationStandalone marks commands that take their target directory as an
// argument. They run without a config file and never resolve a root.
const annotationStandalone = "drawfolders/standalone"

var rootCmd = &cobra.Command{
	Use:   "drawfolders",
	Short: "Find and create drawing folders on the office shares",
	Long: `drawfolders works with the office drawing folder convention:

  <root>/<ccc - Client Name>/<ccc-nnnn>/Rev-<rr>

It lists clients, finds the latest drawing and revision of a client,
proposes the next drawing number and creates new drawing folders.

Roots are read from config.yaml (see --config). A single folder can be
used without a config file through --root-path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if !validOutput(outputFormat) {
			return fmt.Errorf("unknown output format %q (text, json, yaml)", outputFormat)
		}
		return setup(cmd.Annotations[annotationStandalone] != "true")
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Shutdown()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: config.yaml in ., ./configs or the user config dir)")
	rootCmd.PersistentFlags().StringVarP(&rootName, "root", "r", "", "configured root to use (default: the first one)")
	rootCmd.PersistentFlags().StringVar(&rootPath, "root-path", "", "use this folder as a coded root instead of the config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}

// setup loads the configuration, starts logging and builds the engine.
// Without needRoot a missing config file falls back to the defaults.
func setup(needRoot bool) error {
	cfg, root, eng = nil, nil, nil

	loaded, err := loadConfig()
	switch {
	case err == nil:
		cfg = loaded
	case !needRoot && errors.Is(err, domain.ErrConfigNotFound):
		cfg = defaultConfig()
	default:
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	_ = logger.Shutdown()
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return err
	}

	if !needRoot {
		return nil
	}

	root, err = cfg.GetRoot(rootName)
	if err != nil {
		return fmt.Errorf("%w (configured: %v)", err, cfg.RootNames())
	}

	eng = newEngine()
	logger.Get().Debug("ready", "root", root.Name, "path", root.Path, "mode", root.Mode)
	return nil
}

// defaultConfig is used when no config file is needed: no roots, default timeout and logging
func defaultConfig() *config.Config {
	return &config.Config{
		Timeout: config.DefaultTimeout,
		Log:     config.LogConfig{Level: "info", Format: "text"},
	}
}

func loadConfig() (*config.Config, error) {
	if rootPath != "" {
		adhoc := defaultConfig()
		adhoc.Roots = []domain.Root{{
			Name:               "adhoc",
			Path:               config.ExpandPath(rootPath),
			Mode:               domain.NamingCoded,
			CreateRevisionZero: true,
			DefaultCode:        domain.DefaultClientCode,
		}}
		return adhoc, nil
	}

	loaded, err := config.Load(configPath)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: create config.yaml or pass --root-path", err)
	}
	return loaded, err
}

// newEngine builds an engine over the local filesystem with the configured timeout
func newEngine(opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithTimeout(cfg.Timeout),
		engine.WithLogger(logger.Get()),
	}
	return engine.New(local.New(), append(base, opts...)...)
}

// resolveClient finds the client folder named by query in the current root
func resolveClient(ctx context.Context, query string) (domain.ClientFolder, error) {
	clients, err := eng.ListClients(ctx, root.Path, root.Mode)
	if err != nil {
		return domain.ClientFolder{}, err
	}
	return engine.ResolveClient(clients, query)
}
