package dashboards

import "strings"

// StatusLevel is a health color encoded as a gauge value, following the
// convention of the OpenSearch exporters: lower is healthier, -1 means the
// state could not be interpreted.
type StatusLevel float64

const (
	LevelGreen   StatusLevel = 0
	LevelYellow  StatusLevel = 1
	LevelRed     StatusLevel = 2
	LevelUnknown StatusLevel = -1
)

// LevelOf maps a state keyword to its StatusLevel. Matching is
// case-insensitive; anything outside green/yellow/red is unknown.
func LevelOf(state string) StatusLevel {
	switch strings.ToLower(state) {
	case "green":
		return LevelGreen
	case "yellow":
		return LevelYellow
	case "red":
		return LevelRed
	default:
		return LevelUnknown
	}
}
