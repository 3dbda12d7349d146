package roadmap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/skillsphere/backend/pkg/apperr"
	"github.com/skillsphere/backend/pkg/models"
	"github.com/skillsphere/backend/pkg/repository"
)

// Service owns the roadmap record lifecycle: create, list, delete. The
// artifact store does not know about ownership, so every authorization check
// lives here.
type Service struct {
	repo   repository.RoadmapRepo
	logger *slog.Logger
}

func NewService(repo repository.RoadmapRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Save persists a new record for ownerID with a fresh opaque id and the
// current timestamp, and returns the stored record. Records are never
// updated in place; regenerating always produces a new record.
func (s *Service) Save(ctx context.Context, ownerID int64, req models.RoadmapRequest, steps []models.RoadmapStep) (*models.RoadmapRecord, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: missing owner", apperr.ErrInvalidInput)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: roadmap has no steps", apperr.ErrInvalidInput)
	}

	rec := &models.RoadmapRecord{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Request:   req,
		Steps:     steps,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateRoadmap(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("roadmap saved", slog.String("id", rec.ID), slog.Int64("owner_id", ownerID), slog.Int("steps", len(steps)))
	return rec, nil
}

// List returns the owner's records newest-first. A user with no saved
// roadmaps gets an empty slice, not an error.
func (s *Service) List(ctx context.Context, ownerID int64) ([]models.RoadmapRecord, error) {
	recs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []models.RoadmapRecord{}
	}
	return recs, nil
}

// Delete removes a record after verifying ownership: fetch, check, then
// delete. An unknown id is ErrNotFound; an id owned by someone else is
// ErrForbidden with a message that does not confirm the record exists.
// A concurrent second delete of the same id reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, ownerID int64, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing roadmap id", apperr.ErrInvalidInput)
	}

	rec, err := s.repo.GetRoadmap(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: roadmap", apperr.ErrNotFound)
	}
	if rec.OwnerID != ownerID {
		return fmt.Errorf("%w: cannot delete this roadmap", apperr.ErrForbidden)
	}

	return s.repo.DeleteRoadmap(ctx, id)
}
