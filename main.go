package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/padmapper/internal/engine"
	"github.com/soar/padmapper/internal/gamepad"
	"github.com/soar/padmapper/internal/hub"
	"github.com/soar/padmapper/internal/keysim"
	"github.com/soar/padmapper/internal/mapping"
	"github.com/soar/padmapper/internal/server"
	"github.com/soar/padmapper/internal/tray"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	verbose := pflag.CountP("verbose", "v", "increase diagnostic output (repeatable)")
	listen := pflag.StringP("listen", "l", ":8080", "key viewer listen address")
	noServer := pflag.Bool("no-server", false, "disable the key viewer server")
	noTray := pflag.Bool("no-tray", false, "disable the system tray")
	modeFlag := pflag.String("mode", "snapshot", "dispatch mode: snapshot or discrete")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <config file>\n\nFlags:\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	table, err := mapping.Load(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not parse config file: %v\n", err)
		os.Exit(1)
	}

	mode, err := engine.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sink, err := keysim.NewUinputSink("padmapper")
	if err != nil {
		log.Fatalf("Failed to create key injection device: %v", err)
	}
	defer sink.Close()

	ledger := keysim.NewLedger(sink)
	ledger.Verbose = *verbose > 0

	reader := gamepad.NewReader()
	reader.Verbose = *verbose > 1

	dispatcher := engine.New(reader, table, ledger, mode)
	dispatcher.Verbose = *verbose > 0

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Key viewer: hub, broadcaster and HTTP server
	var srv *server.Server
	if !*noServer {
		h := hub.NewHub()
		go h.Run()

		broadcaster := hub.NewBroadcaster(h, ledger.Changes())
		go broadcaster.Run()

		srv = server.New(h, broadcaster, getFrontendFS(), *listen)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				// Observability only; mapping keeps running without it.
				log.Printf("HTTP server error: %v", err)
			}
		}()
	}

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})
	if !*noTray {
		go func() {
			addr := *listen
			if *noServer {
				addr = ""
			}
			t := tray.New(addr, dispatcher.SetPaused, func() {
				close(shutdownRequested)
			})
			t.Run()
		}()
	}

	// reader.Run locks its own OS thread for SDL
	readerDone := make(chan struct{})
	go func() {
		reader.Run(ctx)
		close(readerDone)
	}()

	dispatchDone := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(dispatchDone)
	}()

	log.Printf("padmapper started: %d controller mapping(s), %s mode", len(table.Mappings), mode)
	if *noTray {
		log.Println("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal or tray request
	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	}

	// The dispatcher releases all held keys before it returns; wait for
	// that before the sink is closed.
	<-dispatchDone
	<-readerDone

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}

	log.Println("padmapper stopped")
}
