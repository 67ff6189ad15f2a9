package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/redis/go-redis/v9"

	"batch-gateway-server/models"
)

const (
	ResultKeyPrefix = "dispatch_result:"
	ResultTTL       = 10 * time.Minute
)

type RedisService struct {
	client *redis.Client
}

func NewRedisService(host string, port int) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port),
	})
	return &RedisService{client: client}
}

// PushDispatchJob pushes a dispatch job onto the specified endpoint queue
func (r *RedisService) PushDispatchJob(ctx context.Context, queueKey string, job *models.DispatchJob) error {
	var err error
	xray.Capture(ctx, "Redis.LPush", func(ctx1 context.Context) error {
		jsonData, marshalErr := json.Marshal(job)
		if marshalErr != nil {
			err = marshalErr
			return marshalErr
		}
		err = r.client.LPush(ctx, queueKey, string(jsonData)).Err()

		if seg := xray.GetSegment(ctx1); seg != nil {
			seg.AddMetadata("redis.queue_key", queueKey)
			seg.AddMetadata("redis.operation", "LPUSH")
		}

		return err
	})
	return err
}

// GetDispatchResult retrieves the worker result for a job ID.
// Returns nil without error while the job is still in flight.
func (r *RedisService) GetDispatchResult(ctx context.Context, jobID string) (*models.DispatchResult, error) {
	var result *models.DispatchResult
	var finalErr error

	xray.Capture(ctx, "Redis.Get", func(ctx1 context.Context) error {
		key := ResultKeyPrefix + jobID
		jsonData, err := r.client.Get(ctx, key).Result()
		if err == redis.Nil {
			result = nil
			finalErr = nil
			return nil
		}
		if err != nil {
			finalErr = err
			return err
		}

		var dispatchResult models.DispatchResult
		if err := json.Unmarshal([]byte(jsonData), &dispatchResult); err != nil {
			finalErr = err
			return err
		}
		result = &dispatchResult
		finalErr = nil

		if seg := xray.GetSegment(ctx1); seg != nil {
			seg.AddMetadata("redis.key", key)
			seg.AddMetadata("redis.operation", "GET")
			seg.AddMetadata("redis.job_id", jobID)
		}

		return nil
	})

	return result, finalErr
}

// Ping checks Redis connection
func (r *RedisService) Ping(ctx context.Context) error {
	var err error
	xray.Capture(ctx, "Redis.Ping", func(ctx1 context.Context) error {
		err = r.client.Ping(ctx).Err()

		if seg := xray.GetSegment(ctx1); seg != nil {
			seg.AddMetadata("redis.operation", "PING")
		}

		return err
	})
	return err
}
