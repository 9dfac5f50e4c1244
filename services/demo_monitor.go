package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentProbes = 4

// DemoStore is the part of the demo repository the monitor needs.
type DemoStore interface {
	FindDue(ctx context.Context, now time.Time) ([]models.DemoInstance, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.DemoStatus, checkedAt time.Time) error
}

// DemoMonitor periodically probes live demos and records whether they answer.
type DemoMonitor struct {
	demos    DemoStore
	client   *http.Client
	schedule string
	cron     *cron.Cron
	log      zerolog.Logger
	now      func() time.Time
}

func NewDemoMonitor(demos DemoStore, cfg config.DemoMonitorConfig, log zerolog.Logger) *DemoMonitor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = "@every 1m"
	}
	logger := log.With().Str("service", "demoMonitor").Logger()
	cronLog := cronLogger{logger}
	return &DemoMonitor{
		demos:    demos,
		client:   &http.Client{Timeout: timeout},
		schedule: schedule,
		cron:     cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		log:      logger,
		now:      time.Now,
	}
}

func (m *DemoMonitor) Start() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		if _, err := m.CheckDue(context.Background()); err != nil {
			m.log.Error().Err(err).Msg("demo health check failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", m.schedule, err)
	}
	m.cron.Start()
	m.log.Info().Str("schedule", m.schedule).Msg("Demo monitor started")
	return nil
}

// Stop waits for a running check to finish or ctx to end.
func (m *DemoMonitor) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// CheckDue probes every demo whose check interval has elapsed and returns how many were checked.
func (m *DemoMonitor) CheckDue(ctx context.Context) (int, error) {
	now := m.now()
	due, err := m.demos.FindDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("find due demos: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentProbes)
	for _, demo := range due {
		demo := demo
		g.Go(func() error {
			status := m.Probe(gctx, demo.InstanceURL)
			if status != demo.Status {
				m.log.Info().Str("demoId", demo.ID.String()).
					Str("from", string(demo.Status)).Str("to", string(status)).
					Msg("Demo status changed")
			}
			if err := m.demos.UpdateStatus(gctx, demo.ID, status, now); err != nil {
				return fmt.Errorf("update demo %s: %w", demo.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(due), nil
}

// Probe maps an HTTP GET on url to a demo status: 2xx and 3xx are online, 503 is maintenance,
// everything else including transport errors is offline.
func (m *DemoMonitor) Probe(ctx context.Context, url string) models.DemoStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.DemoOffline
	}
	req.Header.Set("User-Agent", "portfolio-demo-monitor/1.0")

	client := *m.client
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	resp, err := client.Do(req)
	if err != nil {
		m.log.Debug().Err(err).Str("url", url).Msg("demo probe failed")
		return models.DemoOffline
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return models.DemoOnline
	case resp.StatusCode == http.StatusServiceUnavailable:
		return models.DemoMaintenance
	default:
		return models.DemoOffline
	}
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
