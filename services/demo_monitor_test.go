package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDemoStore struct {
	mu      sync.Mutex
	due     []models.DemoInstance
	updates map[uuid.UUID]models.DemoStatus
}

func (f *fakeDemoStore) FindDue(ctx context.Context, now time.Time) ([]models.DemoInstance, error) {
	return f.due, nil
}

func (f *fakeDemoStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DemoStatus, checkedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = map[uuid.UUID]models.DemoStatus{}
	}
	f.updates[id] = status
	return nil
}

func statusServer(t *testing.T, code int) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if code == http.StatusFound {
			http.Redirect(w, r, "/elsewhere", code)
			return
		}
		w.WriteHeader(code)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestDemoMonitor_Probe(t *testing.T) {
	m := NewDemoMonitor(&fakeDemoStore{}, config.DemoMonitorConfig{Timeout: time.Second}, zerolog.Nop())
	ctx := context.Background()

	cases := []struct {
		code int
		want models.DemoStatus
	}{
		{http.StatusOK, models.DemoOnline},
		{http.StatusNoContent, models.DemoOnline},
		{http.StatusFound, models.DemoOnline},
		{http.StatusServiceUnavailable, models.DemoMaintenance},
		{http.StatusInternalServerError, models.DemoOffline},
		{http.StatusNotFound, models.DemoOffline},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, m.Probe(ctx, statusServer(t, tc.code)), "status %d", tc.code)
	}

	assert.Equal(t, models.DemoOffline, m.Probe(ctx, "http://127.0.0.1:1"))
	assert.Equal(t, models.DemoOffline, m.Probe(ctx, "::not a url"))
}

func TestDemoMonitor_CheckDue(t *testing.T) {
	up := models.DemoInstance{Base: models.Base{ID: uuid.New()}, Status: models.DemoOffline, InstanceURL: statusServer(t, http.StatusOK)}
	down := models.DemoInstance{Base: models.Base{ID: uuid.New()}, Status: models.DemoOnline, InstanceURL: statusServer(t, http.StatusBadGateway)}
	store := &fakeDemoStore{due: []models.DemoInstance{up, down}}
	m := NewDemoMonitor(store, config.DemoMonitorConfig{}, zerolog.Nop())

	n, err := m.CheckDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, models.DemoOnline, store.updates[up.ID])
	assert.Equal(t, models.DemoOffline, store.updates[down.ID])
}

func TestDemoMonitor_StartRejectsBadSchedule(t *testing.T) {
	m := NewDemoMonitor(&fakeDemoStore{}, config.DemoMonitorConfig{Schedule: "every now and then"}, zerolog.Nop())
	assert.Error(t, m.Start())

	ok := NewDemoMonitor(&fakeDemoStore{}, config.DemoMonitorConfig{Schedule: "@every 1h"}, zerolog.Nop())
	require.NoError(t, ok.Start())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ok.Stop(ctx)
}
