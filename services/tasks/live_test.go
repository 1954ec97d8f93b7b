package tasks

import (
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveExpiryTaskRoundTrip(t *testing.T) {
	fireAt := time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC)
	task, opts, err := NewLiveExpiryTask(LiveExpiryPayload{VendorID: "v1", SessionID: "s1"}, fireAt)
	require.NoError(t, err)

	assert.Equal(t, TypeLiveExpire, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParseLiveExpiry(task)
	require.NoError(t, err)
	assert.Equal(t, "v1", p.VendorID)
	assert.Equal(t, "s1", p.SessionID)
}

func TestLiveExpiryRequiresIDs(t *testing.T) {
	_, _, err := NewLiveExpiryTask(LiveExpiryPayload{VendorID: "v1"}, time.Now())
	assert.Error(t, err)

	_, err = ParseLiveExpiry(asynq.NewTask(TypeLiveExpire, []byte(`{"vendorId":"v1"}`)))
	assert.Error(t, err)

	_, err = ParseLiveExpiry(asynq.NewTask(TypeLiveExpire, []byte(`not json`)))
	assert.Error(t, err)
}
