package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeLiveExpire = "live:expire"

// LiveExpiryPayload identifies the session to end. The worker ignores it if the
// vendor has since started a different session.
type LiveExpiryPayload struct {
	VendorID  string `json:"vendorId"`
	SessionID string `json:"sessionId"`
}

func NewLiveExpiryTask(payload LiveExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	if payload.VendorID == "" || payload.SessionID == "" {
		return nil, nil, errors.New("live expiry needs a vendor and a session id")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeLiveExpire, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("live-expire:" + payload.SessionID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

func ParseLiveExpiry(task *asynq.Task) (LiveExpiryPayload, error) {
	var p LiveExpiryPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid live expiry payload: %w", err)
	}
	if p.VendorID == "" || p.SessionID == "" {
		return p, errors.New("live expiry payload is missing ids")
	}
	return p, nil
}

// Scheduler queues delayed work.
type Scheduler interface {
	ScheduleLiveExpiry(ctx context.Context, payload LiveExpiryPayload, fireAt time.Time) error
}

type AsynqScheduler struct {
	Client *asynq.Client
}

func NewAsynqScheduler(client *asynq.Client) *AsynqScheduler {
	return &AsynqScheduler{Client: client}
}

func (s *AsynqScheduler) ScheduleLiveExpiry(ctx context.Context, payload LiveExpiryPayload, fireAt time.Time) error {
	task, opts, err := NewLiveExpiryTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue live expiry: %w", err)
	}
	return nil
}
