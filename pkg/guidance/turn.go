package guidance

import (
	"fmt"
	"math"

	"github.com/tracknav/tracknav/pkg"
)

const (
	straightThresholdDegree = 20.0
	slightThresholdDegree   = 50.0
	sharpThresholdDegree    = 110.0
)

// classifyTurn. map a signed turn angle in (-180, 180] (positive = right turn)
// onto a maneuver type.
func classifyTurn(angleDegree float64) pkg.ManeuverType {
	absAngle := math.Abs(angleDegree)
	if absAngle < straightThresholdDegree {
		return pkg.STRAIGHT
	}

	right := angleDegree > 0
	switch {
	case absAngle < slightThresholdDegree:
		if right {
			return pkg.SLIGHT_RIGHT
		}
		return pkg.SLIGHT_LEFT
	case absAngle < sharpThresholdDegree:
		if right {
			return pkg.RIGHT
		}
		return pkg.LEFT
	default:
		if right {
			return pkg.SHARP_RIGHT
		}
		return pkg.SHARP_LEFT
	}
}

// GetInstruction. instruction text for a maneuver. destination is only used for
// ARRIVE and may be empty.
func GetInstruction(maneuver pkg.ManeuverType, destination string) string {
	switch maneuver {
	case pkg.DEPART:
		return "Depart"
	case pkg.STRAIGHT:
		return "Continue straight"
	case pkg.SLIGHT_LEFT:
		return "Turn slightly left"
	case pkg.LEFT:
		return "Turn left"
	case pkg.SHARP_LEFT:
		return "Turn sharply left"
	case pkg.SLIGHT_RIGHT:
		return "Turn slightly right"
	case pkg.RIGHT:
		return "Turn right"
	case pkg.SHARP_RIGHT:
		return "Turn sharply right"
	case pkg.UTURN:
		return "Make a U-turn"
	case pkg.ARRIVE:
		if destination == "" {
			return "Arrive"
		}
		return fmt.Sprintf("Arrive at %s", destination)
	case pkg.MERGE:
		return "Merge"
	case pkg.FORK_LEFT:
		return "Keep left at the fork"
	case pkg.FORK_RIGHT:
		return "Keep right at the fork"
	case pkg.RAMP_LEFT:
		return "Take the ramp on the left"
	case pkg.RAMP_RIGHT:
		return "Take the ramp on the right"
	case pkg.ROUNDABOUT:
		return "Enter the roundabout"
	case pkg.ROUNDABOUT_EXIT_1, pkg.ROUNDABOUT_EXIT_2, pkg.ROUNDABOUT_EXIT_3,
		pkg.ROUNDABOUT_EXIT_4, pkg.ROUNDABOUT_EXIT_5, pkg.ROUNDABOUT_EXIT_6,
		pkg.ROUNDABOUT_EXIT_7, pkg.ROUNDABOUT_EXIT_8:
		exit := int(maneuver-pkg.ROUNDABOUT_EXIT_1) + 1
		return fmt.Sprintf("At the roundabout, take exit %d", exit)
	default:
		return "Continue"
	}
}
