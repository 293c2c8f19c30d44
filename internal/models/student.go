package models

import "time"

// Student is a single student record. DateOfBirth is kept as the raw
// YYYY-MM-DD string the forms submit; the API never interprets it.
type Student struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	RegistrationNumber string    `db:"registration_number" json:"registrationNumber"`
	Major              string    `db:"major" json:"major"`
	DateOfBirth        string    `db:"date_of_birth" json:"dateOfBirth"`
	GPA                float64   `db:"gpa" json:"gpa"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentPatch is a partial-field update. Nil fields are left untouched,
// mirroring a $set-style merge.
type StudentPatch struct {
	Name               *string  `json:"name"`
	RegistrationNumber *string  `json:"registrationNumber"`
	Major              *string  `json:"major"`
	DateOfBirth        *string  `json:"dateOfBirth"`
	GPA                *float64 `json:"gpa"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p StudentPatch) IsEmpty() bool {
	return p.Name == nil && p.RegistrationNumber == nil && p.Major == nil &&
		p.DateOfBirth == nil && p.GPA == nil
}

// ChangesFrom reports whether any supplied field differs from the stored
// record. Equality is strict and per-field; absent fields never count.
func (p StudentPatch) ChangesFrom(s Student) bool {
	if p.Name != nil && *p.Name != s.Name {
		return true
	}
	if p.RegistrationNumber != nil && *p.RegistrationNumber != s.RegistrationNumber {
		return true
	}
	if p.Major != nil && *p.Major != s.Major {
		return true
	}
	if p.DateOfBirth != nil && *p.DateOfBirth != s.DateOfBirth {
		return true
	}
	if p.GPA != nil && *p.GPA != s.GPA {
		return true
	}
	return false
}

// ApplyTo merges the supplied fields into the record.
func (p StudentPatch) ApplyTo(s *Student) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.RegistrationNumber != nil {
		s.RegistrationNumber = *p.RegistrationNumber
	}
	if p.Major != nil {
		s.Major = *p.Major
	}
	if p.DateOfBirth != nil {
		s.DateOfBirth = *p.DateOfBirth
	}
	if p.GPA != nil {
		s.GPA = *p.GPA
	}
}
