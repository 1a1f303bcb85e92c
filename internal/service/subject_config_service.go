package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seating-api/internal/allocator"
	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
)

type subjectConfigRepository interface {
	List(ctx context.Context) ([]models.SubjectConfig, error)
	FindByCode(ctx context.Context, code string) ([]models.SubjectConfig, error)
	Create(ctx context.Context, cfg *models.SubjectConfig) error
	Delete(ctx context.Context, code string, kind models.SubjectKind) error
}

// SubjectConfigService merges built-in and custom Priority and Drawing subject codes.
type SubjectConfigService struct {
	repo      subjectConfigRepository
	validator *validator.Validate
	logger    *zap.Logger
	defaults  map[models.SubjectKind][]string
}

// NewSubjectConfigService constructs the service with the built-in code sets.
func NewSubjectConfigService(repo subjectConfigRepository, validate *validator.Validate, logger *zap.Logger) *SubjectConfigService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectConfigService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		defaults: map[models.SubjectKind][]string{
			models.SubjectKindPriority: defaultPrioritySubjects,
			models.SubjectKindDrawing:  defaultDrawingSubjects,
		},
	}
}

// Effective returns defaults plus custom codes, each kind sorted by code.
func (s *SubjectConfigService) Effective(ctx context.Context) (*models.SubjectConfigSet, error) {
	custom, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subject configuration")
	}

	seen := make(map[string]models.SubjectKind)
	set := &models.SubjectConfigSet{Priority: []models.SubjectConfig{}, Drawing: []models.SubjectConfig{}}
	add := func(cfg models.SubjectConfig) {
		if _, ok := seen[cfg.SubjectCode]; ok {
			return
		}
		seen[cfg.SubjectCode] = cfg.Kind
		switch cfg.Kind {
		case models.SubjectKindPriority:
			set.Priority = append(set.Priority, cfg)
		case models.SubjectKindDrawing:
			set.Drawing = append(set.Drawing, cfg)
		}
	}
	for _, kind := range []models.SubjectKind{models.SubjectKindDrawing, models.SubjectKindPriority} {
		for _, code := range s.defaults[kind] {
			add(models.SubjectConfig{SubjectCode: allocator.NormalizeSubjectCode(code), Kind: kind, IsDefault: true})
		}
	}
	for _, cfg := range custom {
		cfg.SubjectCode = allocator.NormalizeSubjectCode(cfg.SubjectCode)
		if kind, ok := seen[cfg.SubjectCode]; ok && kind != cfg.Kind {
			s.logger.Warn("subject code stored under two kinds", zap.String("subject_code", cfg.SubjectCode))
			continue
		}
		add(cfg)
	}

	sortConfigs(set.Priority)
	sortConfigs(set.Drawing)
	return set, nil
}

// Add stores a custom code. A code may belong to a single kind.
func (s *SubjectConfigService) Add(ctx context.Context, req dto.SubjectConfigRequest, actor string) (*models.SubjectConfig, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject configuration payload")
	}
	code := allocator.NormalizeSubjectCode(req.SubjectCode)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subjectCode is required")
	}

	if kind, ok := s.defaultKind(code); ok {
		if kind == req.Kind {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject code is already a built-in "+string(kind)+" subject")
		}
		return nil, appErrors.Clone(appErrors.ErrConfigConflict, "subject code is already configured as "+string(kind))
	}

	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject configuration")
	}
	for _, cfg := range existing {
		if cfg.Kind == req.Kind {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject code already configured")
		}
		return nil, appErrors.Clone(appErrors.ErrConfigConflict, "subject code is already configured as "+string(cfg.Kind))
	}

	cfg := &models.SubjectConfig{SubjectCode: code, Kind: req.Kind}
	if actor != "" {
		cfg.CreatedBy = &actor
	}
	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store subject configuration")
	}
	s.logger.Info("subject configuration added", zap.String("subject_code", code), zap.String("kind", string(req.Kind)))
	return cfg, nil
}

// Remove deletes a custom code. Built-in codes cannot be removed.
func (s *SubjectConfigService) Remove(ctx context.Context, code string, kind models.SubjectKind) error {
	if !kind.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "type must be PRIORITY or DRAWING")
	}
	code = allocator.NormalizeSubjectCode(code)
	if defaultKind, ok := s.defaultKind(code); ok && defaultKind == kind {
		return appErrors.Clone(appErrors.ErrForbidden, "built-in subject codes cannot be removed")
	}
	if err := s.repo.Delete(ctx, code, kind); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject configuration not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove subject configuration")
	}
	s.logger.Info("subject configuration removed", zap.String("subject_code", code), zap.String("kind", string(kind)))
	return nil
}

func (s *SubjectConfigService) defaultKind(code string) (models.SubjectKind, bool) {
	for kind, codes := range s.defaults {
		for _, candidate := range codes {
			if allocator.NormalizeSubjectCode(candidate) == code {
				return kind, true
			}
		}
	}
	return "", false
}

func sortConfigs(items []models.SubjectConfig) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].SubjectCode < items[j].SubjectCode })
}
