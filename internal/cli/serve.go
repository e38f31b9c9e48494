package cli

import (
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/azanmm/prayer-times/internal/cities"
	"github.com/azanmm/prayer-times/internal/logging"
	"github.com/azanmm/prayer-times/internal/server"
)

const defaultAddr = ":8080"

// serveEnv is the server's environment, read after the optional .env file.
type serveEnv struct {
	Address  string // PRAYER_TIMES_ADDR
	LogLevel string // PRAYER_TIMES_LOG_LEVEL
	GinMode  string // GIN_MODE
}

// loadServeEnv reads envFile into the process environment, without
// overriding variables already set, and returns the relevant values.
// A missing file is not an error unless it was named explicitly.
func loadServeEnv(envFile string, explicit bool) (serveEnv, error) {
	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return serveEnv{}, err
		}
	}
	env := serveEnv{
		Address:  os.Getenv("PRAYER_TIMES_ADDR"),
		LogLevel: os.Getenv("PRAYER_TIMES_LOG_LEVEL"),
		GinMode:  os.Getenv(gin.EnvGinMode),
	}
	if env.Address == "" {
		env.Address = defaultAddr
	}
	if env.GinMode == "" {
		env.GinMode = gin.ReleaseMode
	}
	return env, nil
}

func newServeCmd() *cobra.Command {
	var (
		addr    string
		envFile string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve prayer times over HTTP",
		Long: "Start a JSON HTTP API on top of the calculator.\n\n" +
			"Settings come from flags, then the environment (PRAYER_TIMES_ADDR,\n" +
			"PRAYER_TIMES_LOG_LEVEL, GIN_MODE), optionally loaded from a .env file.\n" +
			"Calculation flags and config set the defaults for requests.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadServeEnv(envFile, cmd.Flags().Changed("env-file"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				env.Address = addr
			}
			if env.LogLevel != "" && !flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "log-level") {
				if err := logging.Setup(env.LogLevel); err != nil {
					return err
				}
			}
			gin.SetMode(env.GinMode)

			srv, err := newServer(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, env.Address)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address (overrides PRAYER_TIMES_ADDR)")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file to load before starting")
	return cmd
}

// newServer builds the HTTP server with request defaults taken from the
// merged config. A location is not needed; requests supply their own.
func newServer(cmd *cobra.Command) (*server.Server, error) {
	cfg := effectiveConfig(cmd)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	var tz float64
	if cfg.Timezone != nil {
		tz = *cfg.Timezone
	}
	defaults, err := buildParams(cfg, cities.City{Timezone: tz})
	if err != nil {
		return nil, err
	}

	return server.New(server.Options{
		Defaults: defaults,
		Catalog:  catalog,
		Logger:   log.Logger,
		Now:      nowFunc,
	}), nil
}
