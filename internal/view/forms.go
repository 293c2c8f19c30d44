package view

import (
	"context"
	"math"
	"strconv"

	"github.com/mnadhif/student-records-api/internal/models"
)

// AddStudentForm is the blank create form. Fields mirror the text
// inputs, so GPA lives as a string until submit.
type AddStudentForm struct {
	api     studentAPI
	refresh func()

	Name               string
	RegistrationNumber string
	Major              string
	DateOfBirth        string
	GPA                string

	Err string
}

// NewAddStudentForm seeds an empty form. refresh runs after a
// successful submit, before the form closes.
func NewAddStudentForm(api studentAPI, refresh func()) *AddStudentForm {
	return &AddStudentForm{api: api, refresh: refresh}
}

// Submit creates the student. A failure lands in Err for inline
// display; success clears it and triggers the refresh callback.
func (f *AddStudentForm) Submit(ctx context.Context) bool {
	_, err := f.api.Create(ctx, models.Student{
		Name:               f.Name,
		RegistrationNumber: f.RegistrationNumber,
		Major:              f.Major,
		DateOfBirth:        f.DateOfBirth,
		GPA:                coerceGPA(f.GPA),
	})
	if err != nil {
		f.Err = err.Error()
		return false
	}
	f.Err = ""
	if f.refresh != nil {
		f.refresh()
	}
	return true
}

// EditStudentForm is the edit form, seeded from an existing record. It
// submits every field, leaving the no-change detection to the server.
type EditStudentForm struct {
	api     studentAPI
	refresh func()
	id      string

	Name               string
	RegistrationNumber string
	Major              string
	DateOfBirth        string
	gpa                float64

	Err string
}

func NewEditStudentForm(api studentAPI, student models.Student, refresh func()) *EditStudentForm {
	return &EditStudentForm{
		api:                api,
		refresh:            refresh,
		id:                 student.ID,
		Name:               student.Name,
		RegistrationNumber: student.RegistrationNumber,
		Major:              student.Major,
		DateOfBirth:        student.DateOfBirth,
		gpa:                student.GPA,
	}
}

// SetGPA coerces the text input on every keystroke. Malformed input
// becomes NaN and flows through unsanitized.
func (f *EditStudentForm) SetGPA(raw string) {
	f.gpa = coerceGPA(raw)
}

// GPA returns the current coerced value.
func (f *EditStudentForm) GPA() float64 {
	return f.gpa
}

func (f *EditStudentForm) Submit(ctx context.Context) bool {
	patch := models.StudentPatch{
		Name:               &f.Name,
		RegistrationNumber: &f.RegistrationNumber,
		Major:              &f.Major,
		DateOfBirth:        &f.DateOfBirth,
		GPA:                &f.gpa,
	}
	if err := f.api.Update(ctx, f.id, patch); err != nil {
		f.Err = err.Error()
		return false
	}
	f.Err = ""
	if f.refresh != nil {
		f.refresh()
	}
	return true
}

func coerceGPA(raw string) float64 {
	gpa, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return gpa
}
