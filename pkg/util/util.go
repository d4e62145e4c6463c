package util

import (
	"errors"
	"fmt"
	"math"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrServiceNotInitialized = errors.New("navigation service is not initialized")
	ErrInvalidRoute          = errors.New("route has fewer than 2 usable waypoints and no usable geometry")
	ErrNavigationActive      = errors.New("navigation is already active")
	ErrRouteNotFound         = errors.New("your requested route is not found")
	ErrSaveFailed            = errors.New("failed to save route")
	ErrLoadFailed            = errors.New("failed to load route")
	ErrInternalServerError   = errors.New("internal Server Error")
	ErrBadParamInput         = errors.New("given Param is not valid")
)

// ErrorCode. unwrap the sentinel code from a wrapped engine/store error.
func ErrorCode(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return err
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NormalizeTurnAngle. normalize a signed angle difference into (-180, 180].
func NormalizeTurnAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}
