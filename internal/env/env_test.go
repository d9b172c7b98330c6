package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"15m", 15 * time.Minute},
		{"3600", time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"1d", 24 * time.Hour},
		{"-2d", time.Hour},
		{"soon", time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)

			require.Equal(t, tt.want, GetDuration("TEST_DURATION", time.Hour))
		})
	}
}

func TestGetDuration_Unset(t *testing.T) {
	require.Equal(t, time.Minute, GetDuration("TEST_DURATION_UNSET", time.Minute))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_INT", "5")
	require.Equal(t, 5, GetInt("TEST_INT", 1))

	t.Setenv("TEST_INT", "five")
	require.Equal(t, 1, GetInt("TEST_INT", 1))
}
