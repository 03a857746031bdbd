package util

import (
	"testing"
	"time"
)

func TestFormatDuration_Resolution(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, (500 * time.Microsecond).String()},
		{1500 * time.Millisecond, (1500 * time.Millisecond).Round(time.Millisecond).String()},
		{90 * time.Second, (90 * time.Second).Round(time.Second).String()},
		{2 * time.Hour, (2 * time.Hour).Round(time.Minute).String()},
	}
	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%s) = %s, want %s", c.d, got, c.want)
		}
	}
}

func TestNow_IsPositive(t *testing.T) {
	if Now() == 0 {
		t.Fatal("expected a non-zero Unix timestamp")
	}
}
