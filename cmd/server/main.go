package main

import (
    "log"
    "os"
    "time"

    "github.com/joho/godotenv"

    "github.com/gin-gonic/gin"

    "github.com/zaqqye/peergrade_backend_v1/internal/config"
    "github.com/zaqqye/peergrade_backend_v1/internal/database"
    "github.com/zaqqye/peergrade_backend_v1/internal/groups"
    "github.com/zaqqye/peergrade_backend_v1/internal/repository"
    "github.com/zaqqye/peergrade_backend_v1/internal/routes"
    "github.com/zaqqye/peergrade_backend_v1/internal/services"
    "github.com/zaqqye/peergrade_backend_v1/internal/session"
    "github.com/zaqqye/peergrade_backend_v1/internal/ws"
)

func main() {
    // Load .env (non-fatal if missing in production)
    _ = godotenv.Load()

    cfg := config.Load()
    if cfg.AuthDisabled {
        log.Println("WARNING: AUTH_DISABLED is set; every request is served without authorization. Never run like this outside local development.")
    }

    db, err := database.Connect(cfg)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }

    if err := database.Migrate(db); err != nil {
        log.Fatalf("database migration failed: %v", err)
    }

    if err := database.SeedTeacher(db, cfg); err != nil {
        log.Fatalf("teacher seed failed: %v", err)
    }

    sessions := session.NewRegistry(cfg.SessionIdleTTL, cfg.SessionMaxTTL)
    go func() {
        // Drop sessions whose tokens are never presented again.
        for range time.Tick(10 * time.Minute) {
            if n := sessions.Purge(); n > 0 {
                log.Printf("purged %d expired sessions", n)
            }
        }
    }()

    svc := groups.NewService(repository.NewGroupRepo(db))

    hub := ws.NewGroupHub()
    go hub.Run()

    var mailer services.Mailer
    if cfg.SendGridAPIKey != "" {
        mailer = services.NewSendGridMailer(cfg.SendGridAPIKey, cfg.AppName, cfg.DefaultFromAddr)
    } else {
        log.Println("SENDGRID_API_KEY not set; login codes go to the server log")
        mailer = &services.ConsoleMailer{AppName: cfg.AppName}
    }

    r := gin.Default()
    routes.Register(r, db, cfg, sessions, svc, hub, mailer)

    port := cfg.Port
    if port == "" {
        port = "8080"
    }

    if err := r.Run(":" + port); err != nil {
        log.Println("server exited with error:", err)
        os.Exit(1)
    }
}
