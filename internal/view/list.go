package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
)

// studentAPI is the slice of the API client the views need.
type studentAPI interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req models.Student) (*models.Student, error)
	Update(ctx context.Context, id string, patch models.StudentPatch) error
	Delete(ctx context.Context, id string) error
}

// StudentListView is the roster screen state. Draft filter edits are
// invisible until Apply copies them over the applied set; Rows derives
// the visible slice from the applied set on every call.
type StudentListView struct {
	api     studentAPI
	logger  *zap.Logger
	records []models.Student

	Draft   Filters
	applied Filters
}

// NewStudentListView constructs the list view. logger may be nil.
func NewStudentListView(api studentAPI, logger *zap.Logger) *StudentListView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentListView{api: api, logger: logger}
}

// Load performs the initial fetch. Unlike Refresh, a failure here is
// surfaced to the caller so the screen can show it.
func (v *StudentListView) Load(ctx context.Context) error {
	records, err := v.api.List(ctx)
	if err != nil {
		return err
	}
	v.records = records
	return nil
}

// Refresh refetches the roster in the background. On failure the
// previous rows stay visible and the error is only logged.
func (v *StudentListView) Refresh(ctx context.Context) {
	records, err := v.api.List(ctx)
	if err != nil {
		v.logger.Warn("failed to refresh student list", zap.Error(err))
		return
	}
	v.records = records
}

// Apply promotes the draft filters to the applied set.
func (v *StudentListView) Apply() {
	v.applied = v.Draft
}

// Reset clears both filter sets.
func (v *StudentListView) Reset() {
	v.Draft = Filters{}
	v.applied = Filters{}
}

// Applied returns the filter set currently narrowing the rows.
func (v *StudentListView) Applied() Filters {
	return v.applied
}

// Rows returns the students passing the applied filters, in fetch
// order.
func (v *StudentListView) Rows() []models.Student {
	rows := make([]models.Student, 0, len(v.records))
	for _, s := range v.records {
		if v.applied.Matches(s) {
			rows = append(rows, s)
		}
	}
	return rows
}

// UniqueMajors lists the distinct majors in first-appearance order,
// feeding the major dropdown.
func (v *StudentListView) UniqueMajors() []string {
	seen := make(map[string]struct{}, len(v.records))
	majors := make([]string, 0, len(v.records))
	for _, s := range v.records {
		if _, ok := seen[s.Major]; ok {
			continue
		}
		seen[s.Major] = struct{}{}
		majors = append(majors, s.Major)
	}
	return majors
}

// Delete removes the student via the API and drops the row locally on
// success.
func (v *StudentListView) Delete(ctx context.Context, id string) error {
	if err := v.api.Delete(ctx, id); err != nil {
		return err
	}
	for i, s := range v.records {
		if s.ID == id {
			v.records = append(v.records[:i], v.records[i+1:]...)
			break
		}
	}
	return nil
}
