package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"studereg/internal/models"
	apperrors "studereg/pkg/errors"
	"studereg/pkg/export"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByName(ctx context.Context, fragment string) ([]*models.Student, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) (bool, error)
	Remove(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	Statistics(ctx context.Context) (*models.Statistics, error)
}

// CreateStudentInput holds the console payload for registering a student.
type CreateStudentInput struct {
	Name   string `validate:"required"`
	Age    *int
	Course string
	Score  *float64 `validate:"omitempty,gte=0,lte=10"`
}

// StudentService handles student use-cases for the console loop.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
	exports   *export.Writer
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger, exports *export.Writer) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger, exports: exports}
}

// Create validates the payload, builds the entity and persists it,
// returning the canonical stored copy.
func (s *StudentService) Create(ctx context.Context, input CreateStudentInput) (*models.Student, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, "invalid student payload")
	}
	student, err := models.NewStudent(input.Name, input.Age, input.Course, input.Score)
	if err != nil {
		return nil, apperrors.FromError(err)
	}
	created, err := s.repo.Create(ctx, student)
	if err != nil {
		s.logger.Error("create student failed", zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to create student")
	}
	return created, nil
}

// Get fetches one student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.FromError(err)
		}
		s.logger.Error("find student failed", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to load student")
	}
	return student, nil
}

// Search returns students whose name contains the fragment, name ascending.
// An empty fragment matches every student.
func (s *StudentService) Search(ctx context.Context, fragment string) ([]*models.Student, error) {
	students, err := s.repo.FindByName(ctx, fragment)
	if err != nil {
		s.logger.Error("search students failed", zap.String("fragment", fragment), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to search students")
	}
	return students, nil
}

// List returns every student, name ascending.
func (s *StudentService) List(ctx context.Context) ([]*models.Student, error) {
	students, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to list students")
	}
	return students, nil
}

// Update loads the stored student, applies the patch with re-validation and
// writes it back in a single statement. False means nothing was written.
func (s *StudentService) Update(ctx context.Context, id int64, upd models.StudentUpdate) (bool, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.FromError(err)
		}
		return false, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to load student")
	}
	if err := student.Apply(upd); err != nil {
		return false, apperrors.FromError(err)
	}
	ok, err := s.repo.Update(ctx, student)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrValidation) {
			return false, apperrors.FromError(err)
		}
		s.logger.Error("update student failed", zap.Int64("id", id), zap.Error(err))
		return false, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to update student")
	}
	return ok, nil
}

// Remove deletes a student by id. False means the id was unknown.
func (s *StudentService) Remove(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Remove(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, apperrors.FromError(err)
		}
		s.logger.Error("remove student failed", zap.Int64("id", id), zap.Error(err))
		return false, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to remove student")
	}
	return ok, nil
}

// Count returns the total number of registered students.
func (s *StudentService) Count(ctx context.Context) (int, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("count students failed", zap.Error(err))
		return 0, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to count students")
	}
	return total, nil
}

// Statistics returns the registry-wide aggregate.
func (s *StudentService) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		s.logger.Error("statistics failed", zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.ErrPersistence.Code, "failed to compute statistics")
	}
	return stats, nil
}

// ExportRoster renders the full roster as csv or pdf and returns the path
// of the written file.
func (s *StudentService) ExportRoster(ctx context.Context, format string) (string, error) {
	students, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return s.render(export.StudentDataset(students), "students", "Student roster", format)
}

// ExportStatistics renders the aggregate report as csv or pdf.
func (s *StudentService) ExportStatistics(ctx context.Context, format string) (string, error) {
	stats, err := s.Statistics(ctx)
	if err != nil {
		return "", err
	}
	return s.render(export.StatisticsDataset(stats), "statistics", "Registry statistics", format)
}

func (s *StudentService) render(data export.Dataset, prefix, title, format string) (string, error) {
	if s.exports == nil {
		return "", apperrors.Clone(apperrors.ErrInternal, "export writer not configured")
	}
	var (
		content []byte
		err     error
	)
	switch format {
	case "csv":
		content, err = export.RenderCSV(data)
	case "pdf":
		content, err = export.RenderPDF(data, title)
	default:
		return "", apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", format), zap.Error(err))
		return "", apperrors.Wrap(err, apperrors.ErrInternal.Code, "failed to render export")
	}
	path, err := s.exports.Write(prefix, format, content)
	if err != nil {
		s.logger.Error("write export failed", zap.Error(err))
		return "", apperrors.Wrap(err, apperrors.ErrInternal.Code, "failed to write export")
	}
	return path, nil
}
