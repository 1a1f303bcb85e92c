package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type studentRepository interface {
	ReplaceAll(ctx context.Context, students []models.Student) error
	ListAll(ctx context.Context) ([]models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	SetPhysicallyChallenged(ctx context.Context, registerNumber string, value bool) (int64, error)
	DeleteAll(ctx context.Context) error
}

type seatingResetter interface {
	Reset(ctx context.Context)
}

// StudentService manages the uploaded examination batch.
type StudentService struct {
	repo      studentRepository
	seating   seatingResetter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService. seating may be nil.
func NewStudentService(repo studentRepository, seating seatingResetter, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, seating: seating, validator: validate, logger: logger}
}

// Upload replaces the stored batch. Any malformed record rejects the whole batch
// and the published seating is discarded once the new batch is stored.
func (s *StudentService) Upload(ctx context.Context, req dto.UploadStudentsRequest) (*dto.UploadStudentsResponse, error) {
	students := NormalizeStudents(req.Students)
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoStudents, "")
	}
	if err := allocator.ValidateStudents(students); err != nil {
		return nil, translateAllocatorError(err)
	}

	if err := s.repo.ReplaceAll(ctx, students); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store students")
	}
	if s.seating != nil {
		s.seating.Reset(ctx)
	}

	summary := summarizeBatch(students)
	s.logger.Info("student batch uploaded",
		zap.Int("students", summary.Total),
		zap.Int("sessions", len(summary.Sessions)),
		zap.Int("subjects", summary.Subjects),
	)
	return summary, nil
}

// List returns a page of the stored batch.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	filter.RegisterNumber = strings.TrimSpace(filter.RegisterNumber)
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// All returns the stored batch in upload order.
func (s *StudentService) All(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	return students, nil
}

// SetPhysicallyChallenged updates every exam entry of a register number.
func (s *StudentService) SetPhysicallyChallenged(ctx context.Context, registerNumber string, req dto.PhysicallyChallengedRequest) (*dto.PhysicallyChallengedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid physically challenged payload")
	}
	registerNumber = strings.TrimSpace(registerNumber)
	if err := s.validator.Var(registerNumber, "required,len=12,numeric"); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "register number must be exactly 12 digits")
	}
	updated, err := s.repo.SetPhysicallyChallenged(ctx, registerNumber, *req.IsPhysicallyChallenged)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	if updated == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return &dto.PhysicallyChallengedResponse{
		RegisterNumber:         registerNumber,
		IsPhysicallyChallenged: *req.IsPhysicallyChallenged,
		Updated:                updated,
	}, nil
}

// Reset removes the stored batch and the published seating.
func (s *StudentService) Reset(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset students")
	}
	if s.seating != nil {
		s.seating.Reset(ctx)
	}
	s.logger.Info("student batch reset")
	return nil
}

// NormalizeStudents trims every field and upper-cases codes. The input is not modified.
func NormalizeStudents(students []models.Student) []models.Student {
	out := make([]models.Student, len(students))
	for i, student := range students {
		student.RegisterNumber = strings.TrimSpace(student.RegisterNumber)
		student.SubjectCode = allocator.NormalizeSubjectCode(student.SubjectCode)
		student.Department = strings.TrimSpace(student.Department)
		student.ExamDate = strings.TrimSpace(student.ExamDate)
		student.Session = models.ExamSession(strings.ToUpper(strings.TrimSpace(string(student.Session))))
		out[i] = student
	}
	return out
}

func summarizeBatch(students []models.Student) *dto.UploadStudentsResponse {
	groups := allocator.GroupSessions(students)
	sessions := make([]string, len(groups))
	for i, group := range groups {
		sessions[i] = group.Key
	}
	subjects := make(map[string]struct{})
	for _, student := range students {
		subjects[student.SubjectCode] = struct{}{}
	}
	return &dto.UploadStudentsResponse{Total: len(students), Sessions: sessions, Subjects: len(subjects)}
}
