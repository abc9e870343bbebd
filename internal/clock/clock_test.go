package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_NowAndSince(t *testing.T) {
	clk := RealClock{}
	before := time.Now()
	now := clk.Now()
	assert.False(t, now.Before(before), "Now() before the call started")
	assert.False(t, now.After(time.Now()), "Now() in the future")
	assert.GreaterOrEqual(t, clk.Since(before), time.Duration(0))
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	clk := NewMockClock(start)
	assert.True(t, clk.Now().Equal(start))

	clk.Advance(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, clk.Since(start))
	assert.True(t, clk.Now().Equal(start.Add(1500*time.Millisecond)))
}

var _ Clock = RealClock{}
var _ Clock = (*MockClock)(nil)
