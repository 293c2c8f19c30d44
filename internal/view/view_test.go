package view

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	apperrors "github.com/mnadhif/student-records-api/pkg/errors"
)

type fakeAPI struct {
	students []models.Student
	listErr  error

	created []models.Student
	updates map[string]models.StudentPatch
	deleted []string

	createErr error
	updateErr error
	deleteErr error
}

func newFakeAPI(students ...models.Student) *fakeAPI {
	return &fakeAPI{students: students, updates: make(map[string]models.StudentPatch)}
}

func (f *fakeAPI) List(ctx context.Context) ([]models.Student, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Student(nil), f.students...), nil
}

func (f *fakeAPI) Get(ctx context.Context, id string) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAPI) Create(ctx context.Context, req models.Student) (*models.Student, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	req.ID = "created"
	f.created = append(f.created, req)
	return &req, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, patch models.StudentPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[id] = patch
	return nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func rosterFixture() []models.Student {
	return []models.Student{
		{ID: "s1", Name: "Ann Droid", RegistrationNumber: "S-1001", Major: "CS", GPA: 3.8},
		{ID: "s2", Name: "Ben Ofili", RegistrationNumber: "S-1002", Major: "Math", GPA: 3.1},
		{ID: "s3", Name: "Annabel Lee", RegistrationNumber: "S-1003", Major: "CS", GPA: 2.4},
	}
}

func TestFiltersMatches(t *testing.T) {
	ann := models.Student{Name: "Ann Droid", Major: "CS", GPA: 3.8}

	assert.True(t, Filters{}.Matches(ann))
	assert.True(t, Filters{Name: "ann"}.Matches(ann))
	assert.True(t, Filters{Name: "DROID"}.Matches(ann))
	assert.False(t, Filters{Name: "ben"}.Matches(ann))

	assert.True(t, Filters{Major: "CS"}.Matches(ann))
	assert.False(t, Filters{Major: "cs"}.Matches(ann))
	assert.False(t, Filters{Major: "Math"}.Matches(ann))

	assert.True(t, Filters{MinGPA: "3.5"}.Matches(ann))
	assert.False(t, Filters{MinGPA: "3.9"}.Matches(ann))

	// a malformed threshold matches nothing
	assert.False(t, Filters{MinGPA: "3..5"}.Matches(ann))
	assert.False(t, Filters{MinGPA: "high"}.Matches(models.Student{GPA: 4.0}))
}

func TestListViewDraftVersusApplied(t *testing.T) {
	v := NewStudentListView(newFakeAPI(rosterFixture()...), zap.NewNop())
	require.NoError(t, v.Load(context.Background()))
	require.Len(t, v.Rows(), 3)

	// editing the draft leaves the rows alone
	v.Draft.Name = "ann"
	assert.Len(t, v.Rows(), 3)

	v.Apply()
	rows := v.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Ann Droid", rows[0].Name)
	assert.Equal(t, "Annabel Lee", rows[1].Name)

	// narrowing the draft further still needs another Apply
	v.Draft.MinGPA = "3.0"
	require.Len(t, v.Rows(), 2)
	v.Apply()
	rows = v.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann Droid", rows[0].Name)

	v.Reset()
	assert.Len(t, v.Rows(), 3)
	assert.True(t, v.Applied().IsZero())
}

func TestListViewUniqueMajors(t *testing.T) {
	v := NewStudentListView(newFakeAPI(rosterFixture()...), zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	assert.Equal(t, []string{"CS", "Math"}, v.UniqueMajors())
}

func TestListViewRefreshKeepsRowsOnFailure(t *testing.T) {
	api := newFakeAPI(rosterFixture()...)
	v := NewStudentListView(api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	api.listErr = apperrors.ErrInternal
	v.Refresh(context.Background())
	assert.Len(t, v.Rows(), 3)

	api.listErr = nil
	api.students = api.students[:1]
	v.Refresh(context.Background())
	assert.Len(t, v.Rows(), 1)
}

func TestListViewNilLogger(t *testing.T) {
	api := newFakeAPI(rosterFixture()...)
	v := NewStudentListView(api, nil)
	require.NoError(t, v.Load(context.Background()))

	// a failed refresh must only log, even without an injected logger
	api.listErr = apperrors.ErrInternal
	v.Refresh(context.Background())
	assert.Len(t, v.Rows(), 3)
}

func TestListViewDelete(t *testing.T) {
	api := newFakeAPI(rosterFixture()...)
	v := NewStudentListView(api, zap.NewNop())
	require.NoError(t, v.Load(context.Background()))

	require.NoError(t, v.Delete(context.Background(), "s2"))
	assert.Equal(t, []string{"s2"}, api.deleted)
	for _, s := range v.Rows() {
		assert.NotEqual(t, "s2", s.ID)
	}

	api.deleteErr = apperrors.ErrNotFound
	require.Error(t, v.Delete(context.Background(), "s1"))
	assert.Len(t, v.Rows(), 2)
}

func TestAddStudentForm(t *testing.T) {
	t.Run("success refreshes and clears error", func(t *testing.T) {
		api := newFakeAPI()
		refreshed := false
		f := NewAddStudentForm(api, func() { refreshed = true })
		f.Name = "Cara Lin"
		f.Major = "Physics"
		f.GPA = "3.5"

		require.True(t, f.Submit(context.Background()))
		assert.True(t, refreshed)
		assert.Empty(t, f.Err)
		require.Len(t, api.created, 1)
		assert.Equal(t, 3.5, api.created[0].GPA)
	})

	t.Run("malformed gpa is coerced to NaN", func(t *testing.T) {
		api := newFakeAPI()
		f := NewAddStudentForm(api, nil)
		f.Name = "Cara Lin"
		f.GPA = "three point five"

		f.Submit(context.Background())
		require.Len(t, api.created, 1)
		assert.True(t, math.IsNaN(api.created[0].GPA))
	})

	t.Run("failure shows inline error", func(t *testing.T) {
		api := newFakeAPI()
		api.createErr = apperrors.New("BAD_REQUEST", 400, "error creating student")
		refreshed := false
		f := NewAddStudentForm(api, func() { refreshed = true })

		require.False(t, f.Submit(context.Background()))
		assert.False(t, refreshed)
		assert.Contains(t, f.Err, "error creating student")
	})
}

func TestEditStudentForm(t *testing.T) {
	seed := models.Student{ID: "s1", Name: "Ann Droid", RegistrationNumber: "S-1001", Major: "CS", DateOfBirth: "2001-04-12", GPA: 3.8}

	t.Run("seeded from the record", func(t *testing.T) {
		f := NewEditStudentForm(newFakeAPI(), seed, nil)
		assert.Equal(t, "Ann Droid", f.Name)
		assert.Equal(t, 3.8, f.GPA())
	})

	t.Run("gpa coerced per keystroke", func(t *testing.T) {
		f := NewEditStudentForm(newFakeAPI(), seed, nil)
		f.SetGPA("3.")
		assert.Equal(t, 3.0, f.GPA())
		f.SetGPA("3.x")
		assert.True(t, math.IsNaN(f.GPA()))
		f.SetGPA("3.9")
		assert.Equal(t, 3.9, f.GPA())
	})

	t.Run("submit sends every field", func(t *testing.T) {
		api := newFakeAPI()
		refreshed := false
		f := NewEditStudentForm(api, seed, func() { refreshed = true })
		f.Major = "EE"
		f.SetGPA("2.7")

		require.True(t, f.Submit(context.Background()))
		assert.True(t, refreshed)

		patch := api.updates["s1"]
		require.NotNil(t, patch.Name)
		assert.Equal(t, "Ann Droid", *patch.Name)
		require.NotNil(t, patch.Major)
		assert.Equal(t, "EE", *patch.Major)
		require.NotNil(t, patch.GPA)
		assert.Equal(t, 2.7, *patch.GPA)
	})

	t.Run("submit failure keeps the form open", func(t *testing.T) {
		api := newFakeAPI()
		api.updateErr = apperrors.ErrInternal
		f := NewEditStudentForm(api, seed, nil)

		require.False(t, f.Submit(context.Background()))
		assert.NotEmpty(t, f.Err)
	})
}

func TestStudentDetailView(t *testing.T) {
	api := newFakeAPI(rosterFixture()...)

	t.Run("load and reload after edit", func(t *testing.T) {
		v := NewStudentDetailView(api, "s1", nil)
		require.NoError(t, v.Load(context.Background()))
		assert.Equal(t, "Ann Droid", v.Student.Name)

		f := v.EditForm(context.Background())
		f.Name = "Ann D."
		require.True(t, f.Submit(context.Background()))
	})

	t.Run("delete navigates away", func(t *testing.T) {
		navigated := false
		v := NewStudentDetailView(api, "s1", func() { navigated = true })
		require.NoError(t, v.Delete(context.Background()))
		assert.True(t, navigated)
	})
}
