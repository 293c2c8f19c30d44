package view

import (
	"context"

	"github.com/mnadhif/student-records-api/internal/models"
)

// StudentDetailView is the single-record screen state.
type StudentDetailView struct {
	api  studentAPI
	id   string
	back func()

	Student models.Student
}

// NewStudentDetailView wires the detail screen for one student id.
// back is invoked when the record is deleted and the screen must
// navigate away.
func NewStudentDetailView(api studentAPI, id string, back func()) *StudentDetailView {
	return &StudentDetailView{api: api, id: id, back: back}
}

// Load fetches the record. Called on entry and again after an edit.
func (v *StudentDetailView) Load(ctx context.Context) error {
	student, err := v.api.Get(ctx, v.id)
	if err != nil {
		return err
	}
	v.Student = *student
	return nil
}

// EditForm builds an edit form seeded from the loaded record that
// reloads this view after a successful submit.
func (v *StudentDetailView) EditForm(ctx context.Context) *EditStudentForm {
	return NewEditStudentForm(v.api, v.Student, func() {
		// reload keeps the screen current; a failed reload keeps the
		// pre-edit record visible
		_ = v.Load(ctx)
	})
}

// Delete removes the record and navigates away on success.
func (v *StudentDetailView) Delete(ctx context.Context) error {
	if err := v.api.Delete(ctx, v.id); err != nil {
		return err
	}
	if v.back != nil {
		v.back()
	}
	return nil
}
