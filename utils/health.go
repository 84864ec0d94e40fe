package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     bool      `json:"redis"`
	Calendar  bool      `json:"calendar"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Overall collapses the component checks into a single status string.
func (h HealthStatus) Overall() string {
	if h.Redis && h.Calendar {
		return "ok"
	}
	return "degraded"
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func probeHealth(redisClient *redis.Client, calendarPing func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisHealthy := redisClient.Ping(ctx).Err() == nil
	calendarHealthy := calendarPing(ctx) == nil

	mu.Lock()
	currentHealth = HealthStatus{
		Redis:     redisHealthy,
		Calendar:  calendarHealthy,
		CheckedAt: time.Now(),
	}
	mu.Unlock()
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
// The first check runs immediately so the snapshot is populated before the
// ticker's first tick. calendarPing probes the calendar gateway; it must honor
// its context.
func StartHealthMonitor(redisClient *redis.Client, calendarPing func(ctx context.Context) error) {
	go func() {
		probeHealth(redisClient, calendarPing)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			probeHealth(redisClient, calendarPing)
		}
	}()
}
