package models

import (
	"sync/atomic"
	"time"
)

// Response is the envelope every endpoint writes. Error is set iff Success is false.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Clock hands out millisecond timestamps that never go backwards, even if the wall clock does.
type Clock struct {
	last atomic.Int64
	now  func() time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource is used by tests to drive the wall clock.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// NowMillis returns max(previous value, wall clock).
func (c *Clock) NowMillis() int64 {
	current := c.now().UnixMilli()
	for {
		last := c.last.Load()
		if current <= last {
			return last
		}
		if c.last.CompareAndSwap(last, current) {
			return current
		}
	}
}

func (c *Clock) Success(data any) Response {
	return Response{Success: true, Data: data, Timestamp: c.NowMillis()}
}

func (c *Clock) Failure(message string) Response {
	return Response{Success: false, Error: message, Timestamp: c.NowMillis()}
}
