package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type testHandler struct {
	responder   Responder
	logger      zerolog.Logger
	database    database.Database
	startupTime time.Time
}

func newTestHandler(db database.Database, startupTime time.Time) testHandler {
	logger := log.With().Str("handlerName", "testHandler").Logger()

	return testHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		database:    db,
		startupTime: startupTime,
	}
}

// ping is the liveness probe
// @Summary Ping
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/test/ping [get]
func (h testHandler) ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{"ping": "pong"})
	}
}

// hello reports uptime and whether the database answers
// @Summary Hello
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/test/hello [get]
func (h testHandler) hello() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbStatus := "ok"
		if err := h.database.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			dbStatus = "unavailable"
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message":        "Hello from the portfolio API",
			"database":       dbStatus,
			"started_at":     h.startupTime,
			"uptime_seconds": int(time.Since(h.startupTime).Seconds()),
		})
	}
}
