package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"
	"github.com/vovakirdan/blockfall/internal/web"
)

var (
	flagWebPort   int
	flagStaticDir string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the companion HTTP server",
	Long: `Start an HTTP server with a health endpoint, a read-only scores API
and a static landing page.

Endpoints:
  GET /health                - Liveness check
  GET /api/scores/<mode>     - Top scores (optional ?limit=N)
  GET /api/stats/<mode>      - Aggregate statistics
  GET /                      - Static landing page

The port is taken from --port, then the PORT environment variable,
then defaults to 3000.

Examples:
  blockfall web
  blockfall web --port 8080
  blockfall web --static ./public`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().IntVar(&flagWebPort, "port", 0, "Port to listen on (0 = PORT env or 3000)")
	webCmd.Flags().StringVar(&flagStaticDir, "static", "", "Directory of static files (default: embedded assets)")
}

func runWeb(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	server := web.NewServer(web.ServerOptions{
		Port:      flagWebPort,
		StaticDir: flagStaticDir,
		Store:     store,
	})

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	fmt.Printf("HTTP server listening on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
	}
	if store != nil {
		store.Close()
	}
}
