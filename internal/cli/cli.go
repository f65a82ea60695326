// Package cli implements the absorb command-line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/internal/config"
	"github.com/matzehuels/absorb/pkg/absorb"
	"github.com/matzehuels/absorb/pkg/atomdata"
	"github.com/matzehuels/absorb/pkg/buildinfo"
	"github.com/matzehuels/absorb/pkg/cache"
	"github.com/matzehuels/absorb/pkg/observability"
	"github.com/matzehuels/absorb/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// redisPingTimeout bounds the reachability check of a Redis cache.
	redisPingTimeout = 2 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	configPath string
	envFile    string
	noCache    bool
	verbose    bool

	stderr  io.Writer
	logFile io.Closer
	engine  *absorb.Engine

	// tableScope prefixes cache keys when a non-default element table is loaded.
	tableScope string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stderr: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Absorb estimates X-ray absorption (muR) of capillary powder samples",
		Long: `Absorb computes the linear absorption coefficient times capillary radius (muR)
of a powder sample from its chemical formula, density or packing fraction,
and the X-ray wavelength or energy, using Cromer-Liberman anomalous
scattering factors.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) { c.teardown() },
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/absorb/config.toml)")
	pf.StringVar(&c.envFile, "env-file", ".env", "dotenv file with ABSORB_* overrides")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")

	// Register all subcommands
	root.AddCommand(c.computeCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.elementsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and wires logging before any command runs.
func (c *CLI) setup() error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, _ := log.ParseLevel(cfg.Log.Level)
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	if cfg.Log.File != "" {
		rotating := newRotatingFile(cfg.Log)
		c.logFile = rotating
		c.Logger.SetOutput(io.MultiWriter(c.stderr, rotating))
	}
	observability.SetComputeHooks(observability.NewLogHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
	return nil
}

func (c *CLI) teardown() {
	if c.logFile != nil {
		c.logFile.Close()
		c.logFile = nil
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newEngine returns the engine over the configured element table, building
// it once per process.
func (c *CLI) newEngine() (*absorb.Engine, error) {
	if c.engine != nil {
		return c.engine, nil
	}
	c.tableScope = ""
	var opts []atomdata.Option
	if v := c.Config.Tables.AtomicVolume; v > 0 {
		opts = append(opts, atomdata.WithAtomicVolume(v))
		c.tableScope += fmt.Sprintf("vol:%g:", v)
	}
	if path := c.Config.Tables.Xsect; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read xsect table: %w", err)
		}
		opts = append(opts, atomdata.WithXsect(bytes.NewReader(data)))
		c.tableScope += "xsect:" + cache.Hash(data)[:16] + ":"
		c.Logger.Debug("loading cross-section table", "path", path)
	}
	if len(opts) == 0 {
		c.engine = absorb.NewEngine(nil)
		return c.engine, nil
	}
	t, err := atomdata.New(opts...)
	if err != nil {
		return nil, err
	}
	c.engine = absorb.NewEngine(t)
	return c.engine, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	engine, err := c.newEngine()
	if err != nil {
		return nil, err
	}
	rc, err := c.newCache()
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.tableScope != "" {
		// Results from a non-default table must not share keys with the embedded one.
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.tableScope)
	}
	r := pipeline.NewRunner(engine, rc, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache opens the configured backend. An unreachable backend degrades to
// no caching rather than failing the command.
func (c *CLI) newCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	rc, err := cache.Open(c.Config.CacheOptions())
	if err != nil {
		if errors.Is(err, cache.ErrUnknownBackend) {
			return nil, err
		}
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	if rs, ok := rc.(*cache.RedisCache); ok {
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			c.Logger.Warn("cache unavailable, continuing without it", "backend", cache.BackendRedis, "error", err)
			return cache.NewNullCache(), nil
		}
	}
	return rc, nil
}
