package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mnadhif/student-records-api/internal/models"
	appErrors "github.com/mnadhif/student-records-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) (int64, error)
}

type studentListCache interface {
	GetList(ctx context.Context) ([]models.Student, error)
	SetList(ctx context.Context, students []models.Student) error
	Invalidate(ctx context.Context) error
}

// CreateStudentRequest holds the payload for creating students. No field is
// required and the GPA range is not checked; the caller submits whatever the
// form held, exactly like the system this replaces.
type CreateStudentRequest struct {
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registrationNumber"`
	Major              string  `json:"major"`
	DateOfBirth        string  `json:"dateOfBirth"`
	GPA                float64 `json:"gpa"`
}

// StudentService handles student record use-cases. Every operation is one
// atomic document read/write; concurrent updates are last-write-wins.
type StudentService struct {
	repo   studentRepository
	cache  studentListCache
	logger *zap.Logger
}

// NewStudentService constructs the student service. cache may be nil.
func NewStudentService(repo studentRepository, cache studentListCache, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, logger: logger}
}

// List returns every student record. A warm cache short-circuits the
// database; cache failures fall back to storage silently.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	if s.cache != nil {
		if students, err := s.cache.GetList(ctx); err == nil {
			return students, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("student list cache read failed", zap.Error(err))
		}
	}

	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching students")
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, students); err != nil {
			s.logger.Warn("student list cache write failed", zap.Error(err))
		}
	}
	return students, nil
}

// Get returns a single student record.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching student")
	}
	return student, nil
}

// Create inserts a new record and returns it with its assigned identity.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	student := &models.Student{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Major:              req.Major,
		DateOfBirth:        req.DateOfBirth,
		GPA:                req.GPA,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error creating student")
	}
	s.invalidateList(ctx)
	return student, nil
}

// Update applies a partial merge to an existing record. When no supplied
// field differs from the stored value the current record is returned
// unchanged and nothing is written.
func (s *StudentService) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, bool, error) {
	if err := validateID(id); err != nil {
		return nil, false, err
	}
	if patch.IsEmpty() {
		return nil, false, appErrors.Clone(appErrors.ErrBadRequest, "no update data provided")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching student")
	}

	if !patch.ChangesFrom(*current) {
		return current, false, nil
	}

	patch.ApplyTo(current)
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error updating student")
	}
	s.invalidateList(ctx)
	return current, true, nil
}

// Replace is the collection-form update: the id arrives in the request body
// and a no-op merge reports not-found, echoing the modified-count check the
// edit form always relied on.
func (s *StudentService) Replace(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found or not updated")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error fetching student")
	}

	if !patch.ChangesFrom(*current) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found or not updated")
	}

	patch.ApplyTo(current)
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error updating student")
	}
	s.invalidateList(ctx)
	return current, nil
}

// Delete removes a record. Deleting an id that no longer exists reports
// not-found; a repeated delete is not an idempotent success.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error deleting student")
	}
	if deleted == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.invalidateList(ctx)
	return nil
}

func (s *StudentService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("student list cache invalidation failed", zap.Error(err))
	}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.Clone(appErrors.ErrBadRequest, "invalid student id")
	}
	return nil
}
