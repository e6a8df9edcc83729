package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/myfolio-api/config"
	"github.com/rpupo63/myfolio-api/errs"
	"github.com/rpupo63/myfolio-api/storage"
)

type diagnosticsHandler struct {
	responder   Responder
	logger      zerolog.Logger
	cfg         *config.Config
	bucket      storage.Bucket
	db          pinger
	startupTime time.Time
}

func newDiagnosticsHandler(cfg *config.Config, bucket storage.Bucket, db pinger, startupTime time.Time) diagnosticsHandler {
	logger := log.With().Str("handlerName", "diagnosticsHandler").Logger()

	return diagnosticsHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		cfg:         cfg,
		bucket:      bucket,
		db:          db,
		startupTime: startupTime,
	}
}

// EnvCheckResponse reports which settings are present. Secrets are reported as booleans only.
type EnvCheckResponse struct {
	SupabaseURL        string `json:"supabase_url"`
	SupabaseKeySet     bool   `json:"supabase_key_set"`
	BucketName         string `json:"bucket_name"`
	StorageBackend     string `json:"storage_backend"`
	DatabaseConfigured bool   `json:"database_configured"`
	UptimeSeconds      int64  `json:"uptime_seconds"`
}

// checkEnv reports configuration presence
// @Summary Check environment
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} EnvCheckResponse
// @Router /check-env [get]
func (h diagnosticsHandler) checkEnv() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, EnvCheckResponse{
			SupabaseURL:        h.cfg.SupabaseURL,
			SupabaseKeySet:     h.cfg.SupabaseKey != "",
			BucketName:         h.bucket.Name(),
			StorageBackend:     h.bucket.Backend(),
			DatabaseConfigured: h.cfg.DSN() != "",
			UptimeSeconds:      int64(time.Since(h.startupTime).Seconds()),
		})
	}
}

// health checks database reachability
// @Summary Health check
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h diagnosticsHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("database ping failed")
			h.responder.WriteError(w, errs.NewServiceUnavailableError("database unavailable", err))
			return
		}
		h.responder.WriteJSON(w, map[string]string{"status": "ok"})
	}
}
