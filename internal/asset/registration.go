package asset

import (
	"regexp"
	"strings"
	"time"
)

// RegistrationPattern is ident/14-digits/5-to-15-digits, e.g. LAB-101/20240101000000/12345.
var RegistrationPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+/\d{14}/\d{5,15}$`)

func ValidRegistration(s string) bool {
	return RegistrationPattern.MatchString(s)
}

// DateLayout is the YYYY-MM-DD format used for every date field.
const DateLayout = "2006-01-02"

// Today is the current UTC date in DateLayout. Replaced in tests.
var Today = func() string {
	return time.Now().UTC().Format(DateLayout)
}

// Status values accepted by the backend.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusRepair   = "repair"
	StatusScrape   = "scrape"
	StatusDamage   = "damage"
)

var StatusOptions = []string{StatusActive, StatusInactive, StatusRepair, StatusScrape, StatusDamage}

type AssignedType string

const (
	AssignedGeneral    AssignedType = "general"
	AssignedIndividual AssignedType = "individual"
)

var AssignedTypeOptions = []AssignedType{AssignedGeneral, AssignedIndividual}

// ParseAssignedType lowercases and trims; ok is false for anything but general/individual.
func ParseAssignedType(s string) (AssignedType, bool) {
	t := AssignedType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case AssignedGeneral, AssignedIndividual:
		return t, true
	}
	return t, false
}
