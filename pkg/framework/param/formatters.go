package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnitPercentFormatter formats a 0-1 value as a percentage.
func UnitPercentFormatter(value float64) string {
	return fmt.Sprintf("%.0f%%", value*100)
}

// UnitPercentParser parses "75%" or "75" back to 0.75.
func UnitPercentParser(str string) (float64, error) {
	str = strings.TrimSuffix(strings.TrimSpace(str), "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// LocationFormatter formats a position on the speaker array.
func LocationFormatter(location float64) string {
	switch {
	case location <= 0.005:
		return "Left"
	case location >= 0.995:
		return "Right"
	case math.Abs(location-0.5) < 0.005:
		return "Centre"
	}
	return fmt.Sprintf("%.0f%%", location*100)
}

// LocationParser parses the output of LocationFormatter.
func LocationParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "left", "l":
		return 0, nil
	case "right", "r":
		return 1, nil
	case "centre", "center", "c":
		return 0.5, nil
	}
	return UnitPercentParser(str)
}
