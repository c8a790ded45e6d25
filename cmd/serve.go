package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgstyler/editor"
	"github.com/benoitkugler/svgstyler/server"
)

var (
	serveAddr string
	serveOpen string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor as a local web page",
	Long: `Starts the editor behind a local HTTP server. Open the printed address
in a browser to load an image, recolor it and export it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		opts, err := editor.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ed := editor.New(opts)
		loopDone := make(chan struct{})
		go func() {
			ed.Run(ctx)
			close(loopDone)
		}()

		if serveOpen != "" {
			f, err := os.Open(serveOpen)
			if err != nil {
				return err
			}
			err = ed.Load(ctx, f)
			f.Close()
			if err != nil {
				return fmt.Errorf("loading %s: %w", serveOpen, err)
			}
		}

		srv := server.New(cfg.Server, ed)
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(cfg.Server.ShutdownSeconds)*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "svgstyler %s listening on http://%s\n", Version, cfg.Server.Addr)
		err = srv.Start()
		stop()
		<-loopDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveOpen, "open", "", "SVG file to load at startup")
	rootCmd.AddCommand(serveCmd)
}
