// Command simdaemon is the long-lived simulation process: one shared
// state behind a tick loop, with an HTTP API for status, metrics, and
// submitting ship commands.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/applog"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/content"
	"github.com/VioletSpaceCadet/space-simulation-sub001/internal/daemon"
	inframetrics "github.com/VioletSpaceCadet/space-simulation-sub001/internal/infra/metrics"
)

func main() {
	contentDir := flag.String("content", "./content", "content directory")
	addr := flag.String("addr", ":8090", "HTTP listen address")
	seed := flag.Uint64("seed", 1, "deterministic RNG seed")
	tickInterval := flag.Duration("tick-interval", time.Second, "wall-clock duration per tick")
	flag.Parse()

	log, err := applog.Setup("simdaemon")
	if err != nil {
		panic(err)
	}

	c, err := content.Load(*contentDir)
	if err != nil {
		log.Error.Fatalf("loading content: %v", err)
	}

	sim := daemon.NewSharedSim(&c, *seed)
	log.Info.Printf("simdaemon starting: content=%s seed=%d addr=%s", *contentDir, *seed, *addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go runTickLoop(ctx, sim, *tickInterval, log)

	server := &http.Server{
		Addr:         *addr,
		Handler:      daemon.NewRouter(sim, log),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error.Printf("shutdown: %v", err)
		}
	}()

	log.Info.Printf("listening on %s", *addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error.Fatal(err)
	}
}

func runTickLoop(ctx context.Context, sim *daemon.SharedSim, interval time.Duration, log *applog.Pair) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			out := sim.Tick()
			inframetrics.TickDuration.Observe(time.Since(start).Seconds())
			inframetrics.TicksProcessed.Inc()
			for _, env := range out {
				inframetrics.EventsEmitted.WithLabelValues(string(env.Event.Kind)).Inc()
			}
		}
	}
}
