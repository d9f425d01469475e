// Package trigger defines the detection categories a camera attaches to its
// recordings and the set type used to combine them. A single recording may
// carry multiple simultaneous causes, so flags are a bitset rather than an
// enum, and the empty set is a meaningful state: the camera recorded without
// any recognized detection.
package trigger

import (
	"fmt"
	"strings"
)

// Set is a combination of detection flags.
type Set uint8

const (
	Person Set = 1 << iota
	Vehicle
	Animal
	Face
	Doorbell
	Motion

	// None is the empty set: no recognized trigger.
	None Set = 0
)

// priority is the fixed tie-break order used when a multi-trigger recording
// needs a single name. Person outranks vehicle, vehicle outranks animal, and
// so on down to motion.
var priority = []Set{Person, Vehicle, Animal, Face, Doorbell, Motion}

var names = map[Set]string{
	Person:   "person",
	Vehicle:  "vehicle",
	Animal:   "animal",
	Face:     "face",
	Doorbell: "doorbell",
	Motion:   "motion",
}

// PrimaryFallback names a recording that carries no recognized trigger.
const PrimaryFallback = "recording"

// Has reports whether every flag in other is present in s.
func (s Set) Has(other Set) bool {
	return s&other == other
}

// Intersects reports whether s and other share at least one flag.
func (s Set) Intersects(other Set) bool {
	return s&other != 0
}

// With returns s with the given flags added.
func (s Set) With(other Set) Set {
	return s | other
}

// IsEmpty reports whether no flags are set.
func (s Set) IsEmpty() bool {
	return s == None
}

// Primary returns the name of the highest-priority flag in s, or
// PrimaryFallback when s is empty.
func (s Set) Primary() string {
	for _, flag := range priority {
		if s.Intersects(flag) {
			return names[flag]
		}
	}
	return PrimaryFallback
}

// Names returns the names of all flags in s, in priority order.
func (s Set) Names() []string {
	out := make([]string, 0, len(priority))
	for _, flag := range priority {
		if s.Intersects(flag) {
			out = append(out, names[flag])
		}
	}
	return out
}

// String renders the set as a comma-separated list, or "none" when empty.
func (s Set) String() string {
	if s.IsEmpty() {
		return "none"
	}
	return strings.Join(s.Names(), ",")
}

// Parse maps a flag name to its Set value.
func Parse(name string) (Set, error) {
	for flag, n := range names {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return flag, nil
		}
	}
	return None, fmt.Errorf("unknown trigger %q", name)
}
