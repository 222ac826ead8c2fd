package domain

import "strings"

// A named populated place from the gazetteer.
// Created once per load from a single input row and never mutated.
type ReferenceLocation struct {
	Name        string
	State       string
	Country     string
	Coordinates Coordinates
	Population  int64
}

// Label joins the non-empty name parts with ", ".
func (l ReferenceLocation) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.State, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Gazetteer is the ordered set of reference locations loaded for one run.
// Order is the file order and is significant for tie-breaking.
type Gazetteer []ReferenceLocation

// Represents the outcome of a nearest-location lookup.
// A nil *MatchResult means no location satisfied the constraints.
type MatchResult struct {
	Location   ReferenceLocation
	DistanceKm float64
	BearingDeg float64
	Direction  string
}
