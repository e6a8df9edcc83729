package api

import (
	"time"

	"github.com/rpupo63/myfolio-api/config"
	"github.com/rpupo63/myfolio-api/database"
	"github.com/rpupo63/myfolio-api/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(cfg *config.Config, db database.Database, bucket storage.Bucket, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(db.ProjectRepo()),
		demoProjectHandler: newDemoProjectHandler(db.DemoProjectRepo(), bucket, cfg.MaxUploadBytes),
		diagnosticsHandler: newDiagnosticsHandler(cfg, bucket, db, startupTime),
	}
}
