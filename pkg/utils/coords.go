package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoordinates parses a latitude/longitude pair submitted as text.
// Both values must be present, finite and inside the WGS84 ranges.
func ParseCoordinates(latRaw, lonRaw string) (lat, lon float64, err error) {
	latRaw = strings.TrimSpace(latRaw)
	lonRaw = strings.TrimSpace(lonRaw)
	if latRaw == "" || lonRaw == "" {
		return 0, 0, ErrMissingCoordinates
	}

	lat, err = strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	lon, err = strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return 0, 0, ErrInvalidCoordinates
	}

	if !ValidCoordinates(lat, lon) {
		return 0, 0, ErrInvalidCoordinates
	}
	return lat, lon, nil
}

func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
