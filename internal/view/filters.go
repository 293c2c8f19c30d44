// Package view holds the client-side view state: a roster list with
// two-stage filters, a detail view, and the add/edit forms. Nothing in
// here talks to storage directly; everything goes through the API
// client.
package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/mnadhif/student-records-api/internal/models"
)

// Filters is one filter set. The list view keeps two copies: the draft
// the user is editing and the applied set that actually narrows rows.
type Filters struct {
	Name   string
	Major  string
	MinGPA string
}

// Matches reports whether a student passes every active criterion.
// Name matches as a case-insensitive substring, major matches exactly,
// and MinGPA is a lower bound. An empty criterion is a wildcard. A
// MinGPA that fails to parse becomes NaN, so every GPA comparison
// fails and the list goes empty until the input is corrected.
func (f Filters) Matches(s models.Student) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Major != "" && s.Major != f.Major {
		return false
	}
	if f.MinGPA != "" {
		min, err := strconv.ParseFloat(f.MinGPA, 64)
		if err != nil {
			min = math.NaN()
		}
		if !(s.GPA >= min) {
			return false
		}
	}
	return true
}

// IsZero reports whether no criterion is set.
func (f Filters) IsZero() bool {
	return f.Name == "" && f.Major == "" && f.MinGPA == ""
}
