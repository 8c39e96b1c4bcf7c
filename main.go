package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"LocalPaint/internal/config"
	lpnet "LocalPaint/internal/net"
	"LocalPaint/internal/state"
	"LocalPaint/internal/ui"
)

const (
	CustomURLScheme = "localpaint://"
	appID           = "io.localpaint"
)

func main() {
	cfg, cfgErr := loadConfig()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	if cfgErr != nil {
		logger.Error("using default settings", "err", cfgErr)
	}

	args := os.Args
	if len(args) > 1 && strings.HasPrefix(args[1], CustomURLScheme) {
		runClient(cfg, logger, args[1])
	} else {
		runHost(cfg, logger)
	}
}

func loadConfig() (config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return config.Default(), err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default(), err
	}
	return cfg, nil
}

func newArea(cfg config.Config, logger *slog.Logger) *ui.PaintArea {
	surface := state.NewSurface(state.UUIDGenerator{},
		state.WithCapacity(cfg.PoolCapacity),
		state.WithStyle(cfg.Style()),
		state.WithLogger(logger.With("component", "surface")),
	)
	return ui.NewPaintArea(surface, logger)
}

// publisher sends committed strokes from a single goroutine so the UI never
// blocks on the network.
func publisher(send func(state.Entry)) (chan<- state.Entry, func()) {
	out := make(chan state.Entry, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range out {
			send(e)
		}
	}()
	return out, func() { close(out); <-done }
}

func runHost(cfg config.Config, logger *slog.Logger) {
	logger.Info("starting as host")
	a := app.NewWithID(appID)
	area := newArea(cfg, logger)
	size := fyne.NewSize(cfg.Width, cfg.Height)

	if !cfg.Share {
		ui.NewWindow(a, area, "LocalPaint", "", size, logger).ShowAndRun()
		return
	}

	hub := lpnet.NewHub(logger.With("component", "hub"))
	hub.OnStroke = func(e state.Entry) {
		fyne.Do(func() { area.Merge(e) })
	}
	hub.Snapshot = func() (snap []state.Entry) {
		fyne.DoAndWait(func() { snap = area.Strokes() })
		return snap
	}
	outbox, stop := publisher(hub.Publish)
	defer stop()
	area.Surface().OnCommit = func(e state.Entry) { outbox <- e }

	ip, err := lpnet.OutgoingIP()
	if err != nil {
		logger.Warn("could not detect local address", "err", err)
		ip = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", CustomURLScheme, ip, cfg.Port)
	w := ui.NewWindow(a, area, "LocalPaint (host)", shareLink, size, logger)
	w.OnLoad = func(entries []state.Entry) {
		for _, e := range entries {
			outbox <- e
		}
	}

	mux := http.NewServeMux()
	mux.Handle(lpnet.Path, hub)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
	go func() {
		logger.Info("sharing", "addr", srv.Addr, "link", shareLink)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("share server stopped", "err", err)
			w.SetStatus(fmt.Sprintf("Sharing unavailable: %v", err))
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if cfg.Advertise {
		mdnsServer, err := lpnet.Advertise(cfg.Port)
		if err != nil {
			logger.Warn("mdns advertise failed", "err", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	w.ShowAndRun()
}

func runClient(cfg config.Config, logger *slog.Logger, link string) {
	logger.Info("starting as client", "link", link)
	a := app.NewWithID(appID)
	area := newArea(cfg, logger)
	w := ui.NewWindow(a, area, "LocalPaint", "", fyne.NewSize(cfg.Width, cfg.Height), logger)

	address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
	go connectToHost(w, logger, address)
	w.ShowAndRun()
}

func connectToHost(w *ui.Window, logger *slog.Logger, address string) {
	if address == "" {
		w.SetStatus("Looking for hosts...")
		found, err := lpnet.Browse(3 * time.Second)
		if err != nil {
			logger.Warn("host discovery failed", "err", err)
		}
		if len(found) == 0 {
			w.SetStatus("No host found on the local network")
			return
		}
		address = found[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := lpnet.Dial(ctx, address)
	if err != nil {
		logger.Error("connection failed", "err", err)
		w.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer client.Close()
	w.SetStatus("Connected to host as " + client.LocalAddr())
	logger.Info("connected", "host", address, "local", client.LocalAddr())

	send := func(e state.Entry) {
		if err := client.Send(e); err != nil {
			logger.Warn("failed to send stroke", "err", err)
		}
	}
	outbox, stop := publisher(send)
	defer stop()
	var backlog []state.Entry
	fyne.DoAndWait(func() { backlog = attachSender(w, outbox) })
	// strokes drawn or loaded while connecting; the host drops duplicates
	for _, e := range backlog {
		outbox <- e
	}

	err = client.Run(func(entries []state.Entry) {
		fyne.Do(func() { w.Area.Merge(entries...) })
	})
	fyne.DoAndWait(func() { detachSender(w) })
	w.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}

// attachSender routes future commits and loads to out and returns the
// strokes that already exist. It must run on the UI goroutine so no commit
// falls between the two.
func attachSender(w *ui.Window, out chan<- state.Entry) []state.Entry {
	w.Area.Surface().OnCommit = func(e state.Entry) { out <- e }
	w.OnLoad = func(entries []state.Entry) {
		for _, e := range entries {
			out <- e
		}
	}
	return w.Area.Strokes()
}

func detachSender(w *ui.Window) {
	w.Area.Surface().OnCommit = nil
	w.OnLoad = nil
}
