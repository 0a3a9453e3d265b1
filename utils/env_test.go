package utils

import (
	"testing"
	"time"
)

func TestEnvGetters(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")
		if got := GetEnvAsInt("TEST_INT", 7); got != 42 {
			t.Errorf("GetEnvAsInt = %d, want 42", got)
		}
		if got := GetEnvAsInt("TEST_INT_MISSING", 7); got != 7 {
			t.Errorf("GetEnvAsInt default = %d, want 7", got)
		}
		t.Setenv("TEST_INT_BAD", "not-a-number")
		if got := GetEnvAsInt("TEST_INT_BAD", 7); got != 7 {
			t.Errorf("GetEnvAsInt on garbage = %d, want default 7", got)
		}
	})

	t.Run("Uint64", func(t *testing.T) {
		t.Setenv("TEST_UINT", "100")
		if got := GetEnvAsUint64("TEST_UINT", 5); got != 100 {
			t.Errorf("GetEnvAsUint64 = %d, want 100", got)
		}
		t.Setenv("TEST_UINT_NEG", "-1")
		if got := GetEnvAsUint64("TEST_UINT_NEG", 5); got != 5 {
			t.Errorf("GetEnvAsUint64 on negative = %d, want default 5", got)
		}
	})

	t.Run("Duration", func(t *testing.T) {
		t.Setenv("TEST_DUR", "90s")
		if got := GetEnvAsDuration("TEST_DUR", time.Minute); got != 90*time.Second {
			t.Errorf("GetEnvAsDuration = %v, want 90s", got)
		}
		if got := GetEnvAsDuration("TEST_DUR_MISSING", time.Minute); got != time.Minute {
			t.Errorf("GetEnvAsDuration default = %v, want 1m", got)
		}
	})
}
