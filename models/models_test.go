package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockNeverGoesBackwards(t *testing.T) {
	times := []time.Time{
		time.UnixMilli(1000),
		time.UnixMilli(2000),
		time.UnixMilli(1500),
		time.UnixMilli(2500),
	}
	i := 0
	clock := NewClockWithSource(func() time.Time {
		ts := times[i]
		i++
		return ts
	})

	assert.Equal(t, int64(1000), clock.NowMillis())
	assert.Equal(t, int64(2000), clock.NowMillis())
	assert.Equal(t, int64(2000), clock.NowMillis())
	assert.Equal(t, int64(2500), clock.NowMillis())
}

func TestClockConcurrentCallers(t *testing.T) {
	clock := NewClock()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev := int64(0)
			for n := 0; n < 200; n++ {
				ts := clock.NowMillis()
				assert.GreaterOrEqual(t, ts, prev)
				prev = ts
			}
		}()
	}
	wg.Wait()
}

func TestEnvelopeShape(t *testing.T) {
	clock := NewClock()

	body, err := json.Marshal(clock.Success(map[string]string{"k": "v"}))
	require.NoError(t, err)
	var ok map[string]any
	require.NoError(t, json.Unmarshal(body, &ok))
	assert.Equal(t, true, ok["success"])
	assert.NotContains(t, ok, "error")
	assert.Contains(t, ok, "timestamp")

	body, err = json.Marshal(clock.Failure(MsgNotFound))
	require.NoError(t, err)
	var failed map[string]any
	require.NoError(t, json.Unmarshal(body, &failed))
	assert.Equal(t, false, failed["success"])
	assert.Equal(t, MsgNotFound, failed["error"])
	assert.NotContains(t, failed, "data")
}

func TestAPIErrorStatus(t *testing.T) {
	cause := errors.New("boom")
	cases := []struct {
		err    *APIError
		status int
	}{
		{ValidationError(cause), http.StatusBadRequest},
		{UnauthorizedError(cause), http.StatusUnauthorized},
		{ForbiddenError(cause), http.StatusForbidden},
		{NotFoundError(cause), http.StatusNotFound},
		{RateLimitedError(), http.StatusTooManyRequests},
		{UpstreamError("Failed to do thing", cause), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status(), tc.err.Message)
	}
}

func TestAsAPIError(t *testing.T) {
	upstream := UpstreamError("Failed to submit idea to blockchain", errors.New("reverted"))
	wrapped := fmt.Errorf("handler: %w", upstream)

	got := AsAPIError(wrapped)
	assert.Same(t, upstream, got)
	assert.ErrorContains(t, got, "reverted")

	plain := AsAPIError(errors.New("nil pointer"))
	assert.Equal(t, KindInternal, plain.Kind)
	assert.Equal(t, MsgInternal, plain.Message)
}

func TestBigUintJSON(t *testing.T) {
	var v struct {
		ID *BigUint `json:"id"`
	}
	huge := "107150860718626732094842504906000181056140481170553360744375038837035105112493"

	require.NoError(t, json.Unmarshal([]byte(`{"id":`+huge+`}`), &v))
	assert.Equal(t, huge, v.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"42"}`), &v))
	assert.Equal(t, "42", v.ID.String())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"id":-1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"id":1.5}`), &v))
}
