package util

import (
	"errors"
	"math"
	"testing"
)

func TestNormalizeTurnAngle(t *testing.T) {
	testCases := []struct {
		name  string
		angle float64
		want  float64
	}{
		{name: "zero", angle: 0, want: 0},
		{name: "small positive", angle: 45, want: 45},
		{name: "small negative", angle: -45, want: -45},
		{name: "wraps above 180", angle: 270, want: -90},
		{name: "wraps below -180", angle: -270, want: 90},
		{name: "exactly 180 stays", angle: 180, want: 180},
		{name: "exactly -180 wraps", angle: -180, want: 180},
		{name: "full revolution", angle: 360, want: 0},
		{name: "bearing difference across north", angle: 350 - 10, want: -20},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTurnAngle(tt.angle)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeTurnAngle(%v) = %v, want %v", tt.angle, got, tt.want)
			}
			if got <= -180 || got > 180 {
				t.Errorf("result %v out of (-180, 180]", got)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	orig := errors.New("disk on fire")
	err := WrapErrorf(orig, ErrSaveFailed, "save route %s", "r1")

	if ErrorCode(err) != ErrSaveFailed {
		t.Errorf("got code %v, want ErrSaveFailed", ErrorCode(err))
	}
	if !errors.Is(err, orig) {
		t.Error("wrapped error must unwrap to the original")
	}
	if err.Error() != "save route r1" {
		t.Errorf("got message %q", err.Error())
	}

	// wrapping a wrap keeps the outermost code
	outer := WrapErrorf(err, ErrLoadFailed, "reload")
	if ErrorCode(outer) != ErrLoadFailed {
		t.Errorf("got code %v, want ErrLoadFailed", ErrorCode(outer))
	}

	// a plain error passes through untouched
	plain := errors.New("plain")
	if ErrorCode(plain) != plain {
		t.Error("plain errors must pass through ErrorCode")
	}
	if ErrorCode(nil) != nil {
		t.Error("nil must pass through ErrorCode")
	}
}

func TestRoundFloat(t *testing.T) {
	if got := RoundFloat(3.14159, 2); got != 3.14 {
		t.Errorf("got %v", got)
	}
	if got := RoundFloat(-2.675, 1); got != -2.7 {
		t.Errorf("got %v", got)
	}
}
