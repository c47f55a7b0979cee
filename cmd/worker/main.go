package main

import (
	"context"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/devconnect/adapters/event"
	"github.com/khoahotran/devconnect/adapters/persistence"
	postUC "github.com/khoahotran/devconnect/internal/application/usecase/post"
	"github.com/khoahotran/devconnect/internal/config"
)

// The worker keeps the Redis feed cache honest: every post or account event
// invalidates the cached feed so the next read rebuilds it from Postgres.
func main() {
	fmt.Println("Starting DevConnect Worker...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Kafka.Brokers,
		GroupTopics: []string{event.TopicPostEvents, event.TopicAccountEvents},
		GroupID:     "feed-cache-invalidator",
		MinBytes:    10e3,
		MaxBytes:    10e6,
	})
	defer consumer.Close()

	log.Printf("Worker listening on topics '%s' and '%s'...", event.TopicPostEvents, event.TopicAccountEvents)

	ctx := context.Background()
	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: read message failed: %v", err)
			continue
		}

		if err := redisClient.Del(ctx, postUC.FeedCacheKey).Err(); err != nil {
			log.Printf("ERROR: invalidate feed cache failed for event on '%s': %v", msg.Topic, err)
			continue
		}
		log.Printf("Invalidated feed cache after event on '%s' (key %s)", msg.Topic, string(msg.Key))
	}
}
