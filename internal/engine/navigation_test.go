package engine_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, engine.ClampOffset(0))
	assert.Equal(t, config.MinDayOffset, engine.ClampOffset(config.MinDayOffset-1))
	assert.Equal(t, config.MaxDayOffset, engine.ClampOffset(config.MaxDayOffset+1000))
	assert.Equal(t, -45830, engine.ClampOffset(-1<<40))
	assert.Equal(t, 36525, engine.ClampOffset(1<<40))
}

// TestNavigator_OffsetAlwaysInRange applies random mutation sequences and
// checks the bound after every step.
func TestNavigator_OffsetAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	nav := engine.NewNavigator()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 20000; i++ {
		switch rng.Intn(8) {
		case 0:
			nav.SetOffset(rng.Intn(400000) - 200000)
		case 1:
			nav.Shift(rng.Intn(100000) - 50000)
		case 2:
			nav.Shift(config.WeekStep)
		case 3:
			nav.Wheel(rng.Float64()*2 - 1)
		case 4:
			nav.Reset()
		case 5:
			nav.StartRolling(engine.Direction(rng.Intn(2)*2-1), now)
		case 6:
			now = now.Add(time.Duration(rng.Intn(200)) * time.Millisecond)
			nav.Tick(now)
		case 7:
			nav.StopRolling()
		}
		off := nav.Offset()
		if off < config.MinDayOffset || off > config.MaxDayOffset {
			t.Fatalf("offset %d out of range after step %d", off, i)
		}
	}
}

func TestNavigator_DiscreteControls(t *testing.T) {
	nav := engine.NewNavigator()

	assert.True(t, nav.Shift(-config.WeekStep))
	assert.Equal(t, -7, nav.Offset())

	assert.True(t, nav.Shift(config.WeekStep*2))
	assert.Equal(t, 7, nav.Offset())

	assert.True(t, nav.SetOffset(123))
	assert.Equal(t, 123, nav.Offset())

	assert.False(t, nav.SetOffset(123), "no change must be reported")

	assert.True(t, nav.Reset())
	assert.Equal(t, 0, nav.Offset())
	assert.False(t, nav.Reset())

	assert.False(t, nav.IsRolling(), "discrete controls never enter Rolling")
}

func TestNavigator_WeekClampsAtBoundary(t *testing.T) {
	nav := engine.NewNavigator()
	nav.SetOffset(config.MaxDayOffset - 3)

	assert.True(t, nav.Shift(config.WeekStep))
	assert.Equal(t, config.MaxDayOffset, nav.Offset())
	assert.False(t, nav.Shift(config.WeekStep))
}

func TestNavigator_WheelPolarity(t *testing.T) {
	nav := engine.NewNavigator()

	assert.True(t, nav.Wheel(1))
	assert.Equal(t, -1, nav.Offset(), "positive delta moves one day back")

	assert.True(t, nav.Wheel(37.5))
	assert.Equal(t, -2, nav.Offset(), "pixel deltas count as one step")

	assert.True(t, nav.Wheel(-0.01))
	assert.Equal(t, -1, nav.Offset(), "negative delta moves one day forward")

	assert.False(t, nav.Wheel(0))
	assert.Equal(t, -1, nav.Offset())
}

func TestNavigator_WheelClampsWithoutWraparound(t *testing.T) {
	nav := engine.NewNavigator()
	nav.SetOffset(config.MinDayOffset)

	assert.False(t, nav.Wheel(1))
	assert.Equal(t, config.MinDayOffset, nav.Offset())

	nav.SetOffset(config.MaxDayOffset)
	assert.False(t, nav.Wheel(-1))
	assert.Equal(t, config.MaxDayOffset, nav.Offset())
}

// TestNavigator_RollingThrottle drives ticks at fixed rates for N seconds and
// expects exactly floor(N*1000/60) steps, whatever the frame rate.
func TestNavigator_RollingThrottle(t *testing.T) {
	tests := []struct {
		name    string
		tick    time.Duration
		seconds int
	}{
		{"1ms ticks for 1s", time.Millisecond, 1},
		{"5ms ticks for 2s", 5 * time.Millisecond, 2},
		{"10ms ticks for 3s", 10 * time.Millisecond, 3},
		{"20ms ticks for 1s", 20 * time.Millisecond, 1},
		{"30ms ticks for 5s", 30 * time.Millisecond, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := engine.NewNavigator()
			start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
			nav.StartRolling(engine.Forward, start)

			total := time.Duration(tt.seconds) * time.Second
			for elapsed := tt.tick; elapsed <= total; elapsed += tt.tick {
				nav.Tick(start.Add(elapsed))
			}

			assert.Equal(t, tt.seconds*1000/60, nav.Offset())
			assert.True(t, nav.IsRolling())
		})
	}
}

func TestNavigator_RollingBackwardAndRelease(t *testing.T) {
	nav := engine.NewNavigator()
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	nav.StartRolling(engine.Backward, start)
	assert.Equal(t, engine.Backward, nav.Rolling())

	assert.False(t, nav.Tick(start.Add(59*time.Millisecond)), "gate not reached")
	assert.True(t, nav.Tick(start.Add(60*time.Millisecond)))
	assert.True(t, nav.Tick(start.Add(120*time.Millisecond)))
	assert.Equal(t, -2, nav.Offset())

	assert.False(t, nav.StopRolling(), "a roll that already stepped adds nothing on release")
	assert.Equal(t, engine.Idle, nav.Rolling())
	assert.Equal(t, -2, nav.Offset())

	assert.False(t, nav.Tick(start.Add(time.Second)), "idle navigator ignores ticks")
	assert.Equal(t, -2, nav.Offset())
}

func TestNavigator_TapStepsOnce(t *testing.T) {
	nav := engine.NewNavigator()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	nav.StartRolling(engine.Forward, now)
	nav.Tick(now.Add(10 * time.Millisecond))
	assert.True(t, nav.StopRolling())
	assert.Equal(t, 1, nav.Offset())

	assert.False(t, nav.StopRolling(), "release while idle is a no-op")
	assert.Equal(t, 1, nav.Offset())
}

func TestNavigator_RollingClampsAtBoundary(t *testing.T) {
	nav := engine.NewNavigator()
	nav.SetOffset(config.MaxDayOffset - 1)
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	nav.StartRolling(engine.Forward, start)
	for i := 1; i <= 10; i++ {
		nav.Tick(start.Add(time.Duration(i) * config.RollInterval))
	}
	assert.Equal(t, config.MaxDayOffset, nav.Offset())
}

func TestNavigator_StartRollingIdleIgnored(t *testing.T) {
	nav := engine.NewNavigator()
	nav.StartRolling(engine.Idle, time.Now())
	assert.False(t, nav.IsRolling())
}
