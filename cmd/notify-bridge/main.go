package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/revuhub/admin-backend/internal/config"
	"github.com/revuhub/admin-backend/internal/db"
	"github.com/revuhub/admin-backend/internal/events"
	"go.uber.org/zap"
)

// Notify Bridge — small optional service that subscribes to Redis events and
// forwards them to the mobile push gateway.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)

	log.Info("notify-bridge started")

	_ = subscriber.Subscribe(ctx, events.StreamNotification, func(event events.Event) {
		log.Info("forwarding notification event", zap.String("type", event.Type))
		forwardToGateway(cfg.PushGatewayURL, event, log)
	})

	_ = subscriber.Subscribe(ctx, events.StreamCampaign, func(event events.Event) {
		log.Info("forwarding campaign event", zap.String("type", event.Type))
		forwardToGateway(cfg.PushGatewayURL, event, log)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down notify-bridge")
	cancel()
}

func forwardToGateway(baseURL string, event events.Event, log *zap.Logger) {
	userID, ok := event.Payload["user_id"]
	if !ok {
		return
	}

	title, _ := event.Payload["title"].(string)
	message, _ := event.Payload["message"].(string)
	if message == "" {
		message = fmt.Sprintf("Event: %s", event.Type)
	}

	body, _ := json.Marshal(map[string]any{
		"user_id": userID,
		"title":   title,
		"message": message,
	})

	url := fmt.Sprintf("%s/internal/push", strings.TrimRight(baseURL, "/"))
	resp, err := http.Post(url, "application/json", strings.NewReader(string(body)))
	if err != nil {
		log.Warn("failed to forward push", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("push gateway returned non-200", zap.Int("status", resp.StatusCode))
	}
}
