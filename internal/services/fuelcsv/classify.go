package fuelcsv

import (
	"strconv"
	"strings"
)

// LineKind tags what an import line turned out to be. Classification is
// explicit here so the format heuristics live in one place instead of
// inline branching at the call site.
type LineKind int

const (
	LineUnrecognized LineKind = iota
	LineVehicleName           // "Vehicle: Swift"
	LineVehicleType           // "Type: car"
	LineSingleRow             // data row from a single-vehicle export
	LineMultiRow              // data row from a multi-vehicle export
)

// ClassifiedLine is the tagged result of classifying one line.
type ClassifiedLine struct {
	Kind   LineKind
	Value  string   // metadata value, for LineVehicleName / LineVehicleType
	Fields []string // split fields, for data rows
}

// Classify decides what a line is. The single-vehicle check (>=7 fields
// with a numeric odometer column) deliberately runs before the
// multi-vehicle check (>=8 fields); historical exports overlap here and
// this is the precedence the app has always applied.
func Classify(line string) ClassifiedLine {
	line = strings.TrimSpace(line)

	if v, ok := strings.CutPrefix(line, "Vehicle:"); ok {
		return ClassifiedLine{Kind: LineVehicleName, Value: strings.TrimSpace(v)}
	}
	if v, ok := strings.CutPrefix(line, "Type:"); ok {
		return ClassifiedLine{Kind: LineVehicleType, Value: strings.TrimSpace(v)}
	}

	parts := strings.Split(line, ",")
	if len(parts) >= 7 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			return ClassifiedLine{Kind: LineSingleRow, Fields: parts}
		}
	}
	if len(parts) >= 8 {
		return ClassifiedLine{Kind: LineMultiRow, Fields: parts}
	}
	return ClassifiedLine{Kind: LineUnrecognized}
}

// NormalizeType maps a type token to a supported vehicle type. Anything
// that is not exactly "car" or "bike" falls back to "car"; no case
// folding, exports have always written the tokens lowercase.
func NormalizeType(token string) string {
	switch token {
	case "car", "bike":
		return token
	default:
		return "car"
	}
}
