//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

type ScheduleCalculateEvent struct {
	ScheduleID  string   `json:"schedule_id"`
	Type        string   `json:"type"`
	CurrentLat  *float64 `json:"current_lat,omitempty"`
	CurrentLng  *float64 `json:"current_lng,omitempty"`
	CurrentTime *string  `json:"current_time,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	scheduleID := flag.String("schedule", "", "Schedule ID to recalculate")
	flag.Parse()

	if *scheduleID == "" {
		log.Fatal("usage: go run test_publish.go -schedule <schedule-id>")
	}

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := ScheduleCalculateEvent{
		ScheduleID: *scheduleID,
		Type:       "SELECT",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:schedule:calculate",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published calculation event %s for schedule %s\n", result, *scheduleID)
}
