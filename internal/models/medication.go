package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMedication is returned when a name does not match a known medication
var ErrUnknownMedication = errors.New("unknown medication")

// Medication identifies one of the tracked medications
type Medication string

const (
	Doliprane  Medication = "doliprane"
	Ibuprofene Medication = "ibuprofene"
)

var (
	medications = []Medication{Doliprane, Ibuprofene}

	displayNames = map[Medication]string{
		Doliprane:  "Doliprane",
		Ibuprofene: "Ibuprofène",
	}
)

// Medications returns the known medications in display order
func Medications() []Medication {
	out := make([]Medication, len(medications))
	copy(out, medications)
	return out
}

// IsKnown reports whether m belongs to the tracked set
func (m Medication) IsKnown() bool {
	_, ok := displayNames[m]
	return ok
}

// DisplayName returns the human-readable name of the medication
func (m Medication) DisplayName() string {
	if name, ok := displayNames[m]; ok {
		return name
	}
	return string(m)
}

func (m Medication) String() string {
	return string(m)
}

// ParseMedication parses a medication identifier case-insensitively.
// The display name (with or without its accent) is accepted too.
func ParseMedication(s string) (Medication, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, m := range medications {
		if needle == string(m) || needle == strings.ToLower(m.DisplayName()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMedication, s)
}
