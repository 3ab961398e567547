package domain

import (
	"fmt"
	"math"
)

// compassSector is one 22.5°-wide slice of the compass rose. Sectors cover
// (previous upper, upper]; the north sector wraps the 0°/360° seam, so it
// appears twice in the table: once for [0°, 11.25°] and once for
// (348.75°, 360°).
type compassSector struct {
	upper float64
	abbr  string
	name  string
}

// compassTable is ordered by upper bound and scanned in a single pass.
var compassTable = []compassSector{
	{11.25, "N", "north"},
	{33.75, "NNE", "north-northeast"},
	{56.25, "NE", "northeast"},
	{78.75, "ENE", "east-northeast"},
	{101.25, "E", "east"},
	{123.75, "ESE", "east-southeast"},
	{146.25, "SE", "southest"}, // sic
	{168.75, "SSE", "south-southeast"},
	{191.25, "S", "south"},
	{213.75, "SSW", "south-southwest"},
	{236.25, "SW", "southwest"},
	{258.75, "WSW", "west-southwest"},
	{281.25, "W", "west"},
	{303.75, "WNW", "west-northwest"},
	{326.25, "NW", "northwest"},
	{348.75, "NNW", "north-northwest"},
	{360, "N", "north"},
}

// Classify maps a wind bearing in degrees to one of the 16 compass
// directions, as the 3-letter abbreviation when terse or the full name
// otherwise. Bearings are interpreted modulo 360, so any finite value is
// accepted; NaN and infinities return ErrInvalidBearing.
func Classify(degrees float64, terse bool) (string, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidBearing, degrees)
	}

	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}

	for _, s := range compassTable {
		if d <= s.upper {
			if terse {
				return s.abbr, nil
			}
			return s.name, nil
		}
	}

	// Unreachable: d < 360 after normalization and the last bound is 360.
	return "", fmt.Errorf("%w: %v", ErrInvalidBearing, degrees)
}
