package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"trainingcal/internal/capture"
	"trainingcal/internal/catalog"
	"trainingcal/internal/config"
	appLog "trainingcal/internal/log"
	"trainingcal/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	once       bool
	check      bool
}

func main() {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	appLog.Info("trainingcal starting", "version", "0.1.0")

	// CLI --listen overrides config file listen if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	catalogPath := conf.CatalogFile(flags.configPath)
	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"catalog", catalogPath,
		"reload", conf.ReloadCron,
		"max_per_cell", conf.MaxPerCell,
		"once", flags.once,
		"check", flags.check,
	)

	store := catalog.NewStore(catalogPath, catalog.LoadOptions{MaxOccurrences: conf.MaxOccurrences})
	if err := store.Reload(); err != nil {
		os.Exit(1)
	}

	if flags.check {
		os.Exit(runCheck(store.Snapshot()))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := web.NewServer(conf, store)

	if flags.once {
		if err := runOnce(ctx, conf, srv); err != nil {
			appLog.Error("preview capture failed", err)
			os.Exit(1)
		}
		return
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(conf.ReloadCron, func() {
		_ = store.Reload()
	}); err != nil {
		appLog.Error("invalid reload schedule", err, "reload", conf.ReloadCron)
		os.Exit(1)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	if err := srv.ListenAndServe(ctx); err != nil {
		appLog.Error("http server stopped", err)
		os.Exit(1)
	}
	appLog.Info("trainingcal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/trainingcal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Capture the current month view to preview_path and exit")
	flag.BoolVar(&cfg.check, "check", false, "Validate the catalog, print issues and exit")

	flag.Parse()

	return cfg
}

// runCheck prints catalog issues and returns the process exit code.
func runCheck(snap *catalog.Snapshot) int {
	for _, is := range snap.Issues {
		fmt.Println(is.String())
	}
	if len(snap.Issues) > 0 {
		fmt.Printf("%d issue(s) found\n", len(snap.Issues))
		return 1
	}
	fmt.Println("catalog OK")
	return 0
}

// runOnce serves the UI just long enough to capture /calendar.
func runOnce(ctx context.Context, conf *config.Config, srv *web.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx)
	}()

	base := "http://" + conf.Listen
	if err := waitHealthy(ctx, base+"/health", 5*time.Second); err != nil {
		return err
	}

	err := capture.CapturePNG(ctx, capture.Options{
		URL:        base + "/calendar",
		OutputPath: conf.PreviewPath,
	})
	if err == nil {
		appLog.Info("preview written", "path", conf.PreviewPath)
	}

	cancel()
	if serr := <-errCh; serr != nil && err == nil {
		err = serr
	}
	return err
}

func waitHealthy(ctx context.Context, url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if resp, err := http.DefaultClient.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
	return errors.New("server did not become healthy in time")
}
