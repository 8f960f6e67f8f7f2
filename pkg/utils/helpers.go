package utils

import (
	"math"
	"strconv"
)

// RoundHalfUp rounds to the nearest integer, ties toward +Inf (-2.5 -> -2)
func RoundHalfUp(value float64) int {
	return int(math.Floor(value + 0.5))
}

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FormatNumber prints a float with the fewest digits that round-trip (3.5, 65)
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
