package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	bb "github.com/logiclab/breadboard"
	"github.com/logiclab/breadboard/internal/api"
	"github.com/logiclab/breadboard/internal/config"
	"github.com/logiclab/breadboard/logger"
	"github.com/logiclab/breadboard/parts"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [flags]",
	Short: "Serve the board API over HTTP.",
	Long: `Serve the board API over HTTP.
	The board starts empty unless --demo stamps a small example circuit onto it.
	With --config, the file is watched and hot-reloaded on change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		demo, _ := cmd.Flags().GetBool("demo")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return serve(cfgPath, demo, verbose)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "path to the YAML config file")
	serveCmd.Flags().Bool("demo", false, "stamp a demo circuit onto the fresh board")
}

func serve(cfgPath string, demo, verbose bool) error {
	var source api.ConfigSource
	if cfgPath != "" {
		loader, err := config.NewLoader(cfgPath)
		if err != nil {
			return err
		}
		// Addr and timeouts need a restart; the log level reapplies here
		// and limits and event tuning are read per request.
		loader.OnChange(func(cfg *config.Config) { applyLog(cfg, verbose) })
		stop, err := loader.Watch()
		if err != nil {
			return err
		}
		defer stop()
		source = loader
	} else {
		source = config.Static{C: config.Default()}
	}
	cfg := source.Config()
	applyLog(cfg, verbose)
	log := logger.Logger()

	board := bb.New()
	if demo {
		if err := stampDemo(board); err != nil {
			return errors.Wrap(err, "stamp demo circuit")
		}
		snap := board.Snapshot()
		log.Info().Int("gates", len(snap.Gates)).Int("wires", len(snap.Wires)).Msg("demo circuit stamped")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.New(board, source),
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
		// event streams end when the serve context does, so shutdown
		// never waits out the grace period on idle clients
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace())
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

// applyLog reconfigures the global logger from the given config.
func applyLog(cfg *config.Config, verbose bool) {
	if cfg.Log.Pretty {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		logger.Set(zerolog.New(out).With().Timestamp().Logger())
	} else {
		logger.Set(zerolog.New(os.Stdout).With().Timestamp().Logger())
	}
	if verbose {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(cfg.Log.Level)
	}
}

// stampDemo builds the starter circuit: a, b => a XOR b, with a raised.
func stampDemo(b *bb.Board) error {
	x := parts.Xor(b, "xor")
	a := b.AddGate(bb.Input, "a")
	c := b.AddGate(bb.Input, "b")
	o := b.AddGate(bb.Output, "out")
	if err := parts.Drive(b, a, x.A); err != nil {
		return err
	}
	if err := parts.Drive(b, c, x.B); err != nil {
		return err
	}
	if _, err := b.AddWire(x.Out, o, 0); err != nil {
		return err
	}
	return b.SetInput(a, true)
}
