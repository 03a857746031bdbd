package pow

import (
	"math/big"
	"strings"
	"testing"
)

func TestFormatRate_Scales(t *testing.T) {
	cases := []struct {
		rate   float64
		suffix string
	}{
		{500, "H/s"},
		{1500, "KH/s"},
		{2_500_000, "MH/s"},
		{3_000_000_000, "GH/s"},
	}
	for _, c := range cases {
		got := FormatRate(c.rate)
		if !strings.HasSuffix(got, c.suffix) {
			t.Errorf("FormatRate(%v) = %q, want suffix %q", c.rate, got, c.suffix)
		}
	}
}

func TestFrame_StringIncludesBlockNumber(t *testing.T) {
	f := Frame{
		ObservedAt:  1700000000,
		BlockNumber: 99,
		BlockHash:   []byte{0xde, 0xad},
		Difficulty:  big.NewInt(5),
		ItersPerSec: 1000,
	}
	s := f.String()
	if !strings.Contains(s, "block=99") {
		t.Errorf("expected rendered frame to contain block=99, got %q", s)
	}
	if !strings.Contains(s, "ts=1700000000") {
		t.Errorf("expected rendered frame to contain ts=1700000000, got %q", s)
	}
	if !strings.Contains(s, "hash=0xdead") {
		t.Errorf("expected rendered frame to contain hash=0xdead, got %q", s)
	}
	if !strings.Contains(s, "best=none") {
		t.Errorf("expected rendered frame to report no best candidate, got %q", s)
	}
}

func TestFrame_StringIncludesBestMargin(t *testing.T) {
	f := Frame{
		BlockNumber: 1,
		Difficulty:  big.NewInt(1),
		BestMargin:  big.NewInt(42),
	}
	s := f.String()
	if !strings.Contains(s, "margin=42") {
		t.Errorf("expected rendered frame to contain margin=42, got %q", s)
	}
}
