package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-biorhythm/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ProfilesFileName", config.ProfilesFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestOffsetBounds pins the external slider contract.
func TestOffsetBounds(t *testing.T) {
	assert.Equal(t, -45830, config.MinDayOffset)
	assert.Equal(t, 36525, config.MaxDayOffset)
	assert.Less(t, config.MinDayOffset, 0)
	assert.Greater(t, config.MaxDayOffset, 0)
}

// TestRollTiming ensures the rolling gate is slower than the frame driver,
// otherwise every frame would step and the gate would be meaningless.
func TestRollTiming(t *testing.T) {
	assert.Equal(t, 60*time.Millisecond, config.RollInterval)
	assert.Greater(t, config.RollInterval, config.FrameInterval)
}

// TestChartWindow_Sanity checks the window geometry constants agree with each other.
func TestChartWindow_Sanity(t *testing.T) {
	assert.Equal(t, 30, config.WindowDays)
	assert.Equal(t, config.WindowDays, config.SidebarLeadDays+config.SidebarTrailDays,
		"Sidebar scan must cover a 30-day window")
	assert.Less(t, config.WindowLeadDays, config.WindowDays)
	assert.Equal(t, 0, config.CurveSegments%config.WindowDays, "Curve samples should align with day columns")
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Biorhythm/"), "UserAgent must start with AppName/")
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.LessOrEqual(t, config.MinFeedHorizon, config.DefaultFeedHorizon)
	assert.LessOrEqual(t, config.DefaultFeedHorizon, config.MaxFeedHorizon)
}
