package main

import (
    "log"
    "os"

    "github.com/joho/godotenv"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"

    "github.com/Metatavu/muisti-api/internal/config"
    "github.com/Metatavu/muisti-api/internal/database"
    "github.com/Metatavu/muisti-api/internal/realtime"
    "github.com/Metatavu/muisti-api/internal/routes"
    "github.com/Metatavu/muisti-api/internal/ws"
)

func main() {
    // Load .env (non-fatal if missing in production)
    _ = godotenv.Load()

    cfg := config.Load()

    logger, err := zap.NewProduction()
    if err != nil {
        log.Fatalf("logger init failed: %v", err)
    }
    defer logger.Sync()

    db, err := database.Connect(cfg)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }

    if err := database.Migrate(db); err != nil {
        log.Fatalf("database migration failed: %v", err)
    }

    if err := database.SeedAdmin(db, cfg); err != nil {
        log.Fatalf("admin seed failed: %v", err)
    }

    hub := ws.NewEventHub()
    go hub.Run()

    var publisher realtime.Publisher
    if cfg.MqttBrokerURL != "" {
        mqttClient, err := realtime.NewMqttClient(cfg.MqttBrokerURL, logger)
        if err != nil {
            log.Fatalf("mqtt connection failed: %v", err)
        }
        publisher = mqttClient
    }
    notifier := realtime.New(publisher, hub, cfg.MqttTopicPrefix, logger)

    r := gin.Default()
    routes.Register(r, db, cfg, notifier, hub)

    port := cfg.Port
    if port == "" {
        port = "8080"
    }

    if err := r.Run(":" + port); err != nil {
        log.Println("server exited with error:", err)
        os.Exit(1)
    }
}
