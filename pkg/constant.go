package pkg

import "encoding/json"

// enum of maneuver_type
type ManeuverType uint8

const (
	DEPART ManeuverType = iota
	STRAIGHT
	SLIGHT_LEFT
	LEFT
	SHARP_LEFT
	SLIGHT_RIGHT
	RIGHT
	SHARP_RIGHT
	UTURN
	ARRIVE
	MERGE
	FORK_LEFT
	FORK_RIGHT
	RAMP_LEFT
	RAMP_RIGHT
	ROUNDABOUT
	ROUNDABOUT_EXIT_1
	ROUNDABOUT_EXIT_2
	ROUNDABOUT_EXIT_3
	ROUNDABOUT_EXIT_4
	ROUNDABOUT_EXIT_5
	ROUNDABOUT_EXIT_6
	ROUNDABOUT_EXIT_7
	ROUNDABOUT_EXIT_8
)

var maneuverNames = [...]string{
	DEPART:            "depart",
	STRAIGHT:          "straight",
	SLIGHT_LEFT:       "slight_left",
	LEFT:              "left",
	SHARP_LEFT:        "sharp_left",
	SLIGHT_RIGHT:      "slight_right",
	RIGHT:             "right",
	SHARP_RIGHT:       "sharp_right",
	UTURN:             "uturn",
	ARRIVE:            "arrive",
	MERGE:             "merge",
	FORK_LEFT:         "fork_left",
	FORK_RIGHT:        "fork_right",
	RAMP_LEFT:         "ramp_left",
	RAMP_RIGHT:        "ramp_right",
	ROUNDABOUT:        "roundabout",
	ROUNDABOUT_EXIT_1: "roundabout_exit_1",
	ROUNDABOUT_EXIT_2: "roundabout_exit_2",
	ROUNDABOUT_EXIT_3: "roundabout_exit_3",
	ROUNDABOUT_EXIT_4: "roundabout_exit_4",
	ROUNDABOUT_EXIT_5: "roundabout_exit_5",
	ROUNDABOUT_EXIT_6: "roundabout_exit_6",
	ROUNDABOUT_EXIT_7: "roundabout_exit_7",
	ROUNDABOUT_EXIT_8: "roundabout_exit_8",
}

func (m ManeuverType) String() string {
	if int(m) >= len(maneuverNames) {
		return "unknown"
	}
	return maneuverNames[m]
}

func (m ManeuverType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *ManeuverType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*m = GetManeuverType(name)
	return nil
}

// GetManeuverType. inverse of ManeuverType.String, used when loading persisted routes
func GetManeuverType(name string) ManeuverType {
	for m, n := range maneuverNames {
		if n == name {
			return ManeuverType(m)
		}
	}
	return STRAIGHT
}

// enum of navigation_state
type NavigationState uint8

const (
	IDLE NavigationState = iota
	NAVIGATING
	OFF_ROAD
	ARRIVED
	CANCELLED
)

func (s NavigationState) String() string {
	switch s {
	case IDLE:
		return "idle"
	case NAVIGATING:
		return "navigating"
	case OFF_ROAD:
		return "off_road"
	case ARRIVED:
		return "arrived"
	case CANCELLED:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s NavigationState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// enum of display_mode. which screen the renderer should show
type DisplayMode uint8

const (
	DISPLAY_MAP DisplayMode = iota
	DISPLAY_TURN
	DISPLAY_OFF_ROAD
	DISPLAY_ARRIVAL
)

func (d DisplayMode) String() string {
	switch d {
	case DISPLAY_MAP:
		return "map"
	case DISPLAY_TURN:
		return "turn"
	case DISPLAY_OFF_ROAD:
		return "off_road"
	case DISPLAY_ARRIVAL:
		return "arrival"
	default:
		return "unknown"
	}
}

func (d DisplayMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// enum of update_type. why a NavigationUpdate fired
type UpdateType uint8

const (
	UPDATE_STATUS UpdateType = iota
	UPDATE_WAYPOINT_REACHED
	UPDATE_TURN_APPROACHING
	UPDATE_OFF_ROAD
	UPDATE_ARRIVED
)

func (u UpdateType) String() string {
	switch u {
	case UPDATE_STATUS:
		return "status"
	case UPDATE_WAYPOINT_REACHED:
		return "waypoint_reached"
	case UPDATE_TURN_APPROACHING:
		return "turn_approaching"
	case UPDATE_OFF_ROAD:
		return "off_road"
	case UPDATE_ARRIVED:
		return "arrived"
	default:
		return "unknown"
	}
}

func (u UpdateType) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}
