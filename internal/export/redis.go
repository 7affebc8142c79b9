package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/views"
)

const timeFormat = "2006-01-02 15:04:05"

// SummaryPublisher writes the dashboard aggregates into a single Redis
// hash so other tools can show them without calling the backend.
type SummaryPublisher struct {
	redis *redis.Client
	key   string
}

func NewSummaryPublisher(redisURL, key string) (*SummaryPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SummaryPublisher{redis: client, key: key}, nil
}

func (p *SummaryPublisher) Key() string {
	return p.key
}

// Publish replaces the summary hash with the given snapshot.
func (p *SummaryPublisher) Publish(ctx context.Context, st views.DashboardState, now time.Time) error {
	top, err := json.Marshal(st.TopPerformers)
	if err != nil {
		return fmt.Errorf("failed to encode top performers: %w", err)
	}
	recent, err := json.Marshal(st.RecentActivity)
	if err != nil {
		return fmt.Errorf("failed to encode recent activity: %w", err)
	}

	pipe := p.redis.TxPipeline()
	pipe.Del(ctx, p.key)
	pipe.HSet(ctx, p.key, map[string]interface{}{
		"student_count":    st.StudentCount,
		"module_count":     st.ModuleCount,
		"grade_count":      st.GradeCount,
		"average":          strconv.FormatFloat(st.Average, 'f', 2, 64),
		"top_performers":   string(top),
		"recent_activity":  string(recent),
		"updated_dttm_utc": now.UTC().Format(timeFormat),
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish summary: %w", err)
	}

	logger.Debug.Printf("Published dashboard summary to %s", p.key)
	return nil
}

// Summary reads the hash back.
func (p *SummaryPublisher) Summary(ctx context.Context) (map[string]string, error) {
	values, err := p.redis.HGetAll(ctx, p.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no summary published under %s", p.key)
	}
	return values, nil
}

func (p *SummaryPublisher) Close() error {
	if p.redis != nil {
		return p.redis.Close()
	}
	return nil
}
