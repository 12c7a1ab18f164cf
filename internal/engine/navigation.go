package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/go-biorhythm/internal/config"
)

// Direction of a continuous shift. The zero value means idle.
type Direction int

const (
	Idle     Direction = 0
	Backward Direction = -1
	Forward  Direction = 1
)

// ClampOffset forces v into [MinDayOffset, MaxDayOffset].
func ClampOffset(v int) int {
	return min(max(v, config.MinDayOffset), config.MaxDayOffset)
}

// Navigator holds the day offset and the rolling state machine.
//
// Every mutator clamps before committing and reports whether the offset
// actually changed, so the caller knows when to invalidate the chart.
// Navigator is not safe for concurrent use; it lives on the UI goroutine.
type Navigator struct {
	offset    int
	rolling   Direction
	lastTick  time.Time
	rollSteps int
}

// NewNavigator returns an idle navigator at offset 0 (today).
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Offset returns the current day offset.
func (n *Navigator) Offset() int {
	return n.offset
}

// Rolling returns the active direction, or Idle.
func (n *Navigator) Rolling() Direction {
	return n.rolling
}

// IsRolling reports whether the tick driver must be running.
func (n *Navigator) IsRolling() bool {
	return n.rolling != Idle
}

// SetOffset sets an absolute offset (slider, jump, sidebar click).
func (n *Navigator) SetOffset(v int) bool {
	v = ClampOffset(v)
	if v == n.offset {
		return false
	}
	n.offset = v
	return true
}

// Shift moves the offset by delta days (week buttons).
func (n *Navigator) Shift(delta int) bool {
	return n.SetOffset(n.offset + delta)
}

// Reset jumps back to today.
func (n *Navigator) Reset() bool {
	return n.SetOffset(0)
}

// Wheel applies one scroll event. A positive delta moves one day back,
// a negative delta one day forward, a zero delta is ignored.
func (n *Navigator) Wheel(delta float64) bool {
	switch {
	case delta > 0:
		return n.Shift(-config.WheelStep)
	case delta < 0:
		return n.Shift(config.WheelStep)
	default:
		return false
	}
}

// StartRolling enters the Rolling state and records now as the last tick.
func (n *Navigator) StartRolling(dir Direction, now time.Time) {
	if dir == Idle {
		return
	}
	n.rolling = dir
	n.lastTick = now
	n.rollSteps = 0
	slog.Debug(config.MsgRollStart,
		config.LogKeyComponent, config.CompNav,
		config.LogKeyDirection, int(dir),
		config.LogKeyOffset, n.offset)
}

// Tick advances a rolling navigator by one step when at least RollInterval
// has elapsed since the previous step. It returns true when the offset changed.
func (n *Navigator) Tick(now time.Time) bool {
	if n.rolling == Idle {
		return false
	}
	if now.Sub(n.lastTick) < config.RollInterval {
		return false
	}
	n.lastTick = now
	n.rollSteps++
	return n.Shift(int(n.rolling) * config.DayStep)
}

// StopRolling returns to Idle. A roll released before its first step still
// moves one day, so a plain click on a step button behaves like a step.
func (n *Navigator) StopRolling() bool {
	if n.rolling == Idle {
		return false
	}
	dir, steps := n.rolling, n.rollSteps
	n.rolling = Idle
	n.rollSteps = 0

	changed := false
	if steps == 0 {
		changed = n.Shift(int(dir) * config.DayStep)
	}
	slog.Debug(config.MsgRollStop,
		config.LogKeyComponent, config.CompNav,
		config.LogKeySteps, steps,
		config.LogKeyOffset, n.offset)
	return changed
}
