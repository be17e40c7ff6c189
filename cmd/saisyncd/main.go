// Command saisyncd is the daemon process (spec section 1's syncd): it owns
// the bus's persistent store, the ID translation store, and the vendor
// SDK, and runs the dispatch/notify/diag loops against them. Modeled on
// cmd/osvbngd's flag/config/logger/signal sequence, trimmed to the much
// smaller component set this daemon actually has (no VPP connect, no
// plugin loader, no northbound API registry).
package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/opencompute/go-sairedis/api/saipb"
	"github.com/opencompute/go-sairedis/internal/obslog"
	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/sqlitestore"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/config"
	"github.com/opencompute/go-sairedis/pkg/syncd"
	"github.com/opencompute/go-sairedis/pkg/syncd/metrics"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

func main() {
	configPath := flag.String("config", "/etc/saisyncd/saisyncd.yaml", "path to saisyncd config file")
	diagFlag := flag.Bool("diag", false, "start the vendor diag-shell thread (same as diag.enabled in the config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	components := make(map[string]obslog.Level, len(cfg.Logging.Components))
	for name, lvl := range cfg.Logging.Components {
		components[name] = obslog.Level(lvl)
	}
	obslog.Configure(cfg.Logging.Format, obslog.Level(cfg.Logging.Level), components)
	mainLog := obslog.Component(obslog.ComponentSyncd)

	store, err := sqlitestore.Open(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	b := bus.New(store, obslog.Component(obslog.ComponentBus))
	defer b.Close()

	trans := translation.New(store)

	sdk, err := newVendorSDK(cfg.Vendor.Target)
	if err != nil {
		log.Fatalf("init vendor sdk: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sdk.Connect(ctx); err != nil {
		log.Fatalf("connect vendor sdk: %v", err)
	}

	var reg *prometheus.Registry
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		m = metrics.New(reg)
	}

	d := syncd.NewDispatcher(b, trans, sdk, mainLog, m)

	go d.Run(ctx)
	go d.RunNotify(ctx)

	if cfg.Diag.Enabled || *diagFlag {
		interval := cfg.Diag.Interval
		if interval <= 0 {
			interval = time.Minute
		}
		go syncd.RunDiagShell(ctx, sdk, interval, d)
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			mainLog.Info("metrics server listening", "addr", cfg.Metrics.Address)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				mainLog.Error("metrics server error", "error", err)
			}
		}()
	}

	var rpcServer *grpc.Server
	if cfg.RPC.Enabled {
		lis, err := net.Listen("tcp", cfg.RPC.Address)
		if err != nil {
			log.Fatalf("listen rpc: %v", err)
		}
		rpcServer = grpc.NewServer()
		saipb.RegisterServer(rpcServer, &saipb.Introspector{Bus: b, Trans: trans, SDK: sdk})
		go func() {
			mainLog.Info("introspection rpc server listening", "addr", cfg.RPC.Address)
			if err := rpcServer.Serve(lis); err != nil {
				mainLog.Error("rpc server error", "error", err)
			}
		}()
	}

	mainLog.Info("saisyncd started", "vendor_target", cfg.Vendor.Target, "store", cfg.Store.SQLitePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	mainLog.Info("shutting down saisyncd")
	cancel()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		metricsServer.Shutdown(shutdownCtx)
	}

	if rpcServer != nil {
		rpcServer.GracefulStop()
	}

	if err := sdk.Disconnect(context.Background()); err != nil {
		mainLog.Error("disconnect vendor sdk", "error", err)
	}

	mainLog.Info("saisyncd stopped")
}

// newVendorSDK resolves the --vendor.target config value to a concrete
// SDK. "fake" is the only binding this repo ships (spec section 1 puts a
// real ASIC binding out of scope); any other target is an error rather
// than a silent fallback, so a misconfigured daemon fails fast.
func newVendorSDK(target string) (vendor.SDK, error) {
	switch target {
	case "", "fake":
		return vendor.NewFake(), nil
	default:
		return nil, unknownVendorTargetError(target)
	}
}

type unknownVendorTargetError string

func (e unknownVendorTargetError) Error() string {
	return "unknown vendor.target " + string(e) + " (only \"fake\" is built in)"
}
