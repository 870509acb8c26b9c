package main

import (
	"context"
	"log"

	"ai-stemtutor-be/internal/bootstrap"
	"ai-stemtutor-be/internal/config"
	"ai-stemtutor-be/internal/server"
	"ai-stemtutor-be/internal/tracer"
	"ai-stemtutor-be/pkg/database"

	"gorm.io/gorm"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	var gormDB *gorm.DB
	if cfg.Database.Connection != "" {
		var err error
		gormDB, err = database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Panicf("Unable to connect to GORM DB: %v", err)
		}
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	if err := container.WorkerService.Start(context.Background()); err != nil {
		log.Panicf("Unable to start interaction workers: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
