package geo

import (
	"fmt"
	"strings"
)

// Unit is a design-space length unit.
type Unit string

const (
	UnitInches Unit = "inches"
	UnitFeet   Unit = "feet"
	UnitMeters Unit = "meters"
)

// meters -> design unit
var unitScales = map[Unit]float64{
	UnitInches: 39.3701,
	UnitFeet:   3.28084,
	UnitMeters: 1.0,
}

var unitAliases = map[string]Unit{
	"in":     UnitInches,
	"inch":   UnitInches,
	"inches": UnitInches,
	"ft":     UnitFeet,
	"foot":   UnitFeet,
	"feet":   UnitFeet,
	"m":      UnitMeters,
	"meter":  UnitMeters,
	"meters": UnitMeters,
	"metre":  UnitMeters,
	"metres": UnitMeters,
}

// ParseUnit resolves a unit name (case-insensitive, common aliases allowed).
func ParseUnit(name string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u, nil
}

// Scale returns the meters to design-unit factor, or 0 for an unknown unit.
func (u Unit) Scale() float64 {
	return unitScales[u]
}

// Units lists the supported units from smallest to largest.
func Units() []Unit {
	return []Unit{UnitInches, UnitFeet, UnitMeters}
}
