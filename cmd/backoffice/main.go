package main

import (
	"os"

	v1 "go_backoffice/api/v1"
	"go_backoffice/internal/audit"
	"go_backoffice/internal/auth"
	"go_backoffice/internal/cache"
	"go_backoffice/internal/config"
	"go_backoffice/internal/db"
	"go_backoffice/internal/presence"
	"go_backoffice/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := loadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.Info("configuration loaded")

	auth.InitJWT(cfg.JWT.Secret)

	// 2. Initialize MySQL
	gdb, err := db.Open(cfg.MySQL.DSN)
	if err != nil {
		logrus.Fatalf("Failed to initialize MySQL: %v", err)
	}
	defer db.Close(gdb)

	if cfg.Migrate {
		if err := db.Migrate(gdb); err != nil {
			logrus.Fatalf("Failed to migrate database: %v", err)
		}
		if err := db.SeedOwner(gdb, cfg.Seed.OwnerEmail, cfg.Seed.OwnerPassword); err != nil {
			logrus.Fatalf("Failed to seed owner account: %v", err)
		}
	}

	// 3. Initialize Redis (session revocation)
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer cache.Close()

	// 4. Process-wide audit log and presence tracker, owned here and
	// injected into whatever needs them
	auditLog := audit.NewLog(logrus.WithField("component", "audit"))
	tracker := presence.NewTracker(logrus.WithField("component", "presence"))

	// 5. Live audit feed over Socket.IO
	wsServer, err := ws.NewServer(logrus.WithField("component", "ws"))
	if err != nil {
		logrus.Fatalf("Failed to initialize websocket server: %v", err)
	}
	publisher := ws.NewPublisher(wsServer, logrus.WithField("component", "ws"))
	auditLog.OnAppend(publisher.AuditEvent)

	// 6. Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Any("/socket.io/*any", gin.WrapH(ws.AuthMiddleware(wsServer)))

	v1.SetupRouter(r, v1.Deps{
		DB:       gdb,
		Cfg:      cfg,
		AuditLog: auditLog,
		Presence: tracker,
	})

	logrus.WithField("addr", cfg.HTTPAddr).Info("server starting")

	if err := r.Run(cfg.HTTPAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// loadConfig prefers an INI file when CONFIG_FILE points at one,
// falling back to environment variables
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return config.LoadFromINI(path)
	}
	return config.Load()
}
