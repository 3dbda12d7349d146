package roadmap_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/skillsphere/backend/internal/roadmap"
	"github.com/skillsphere/backend/pkg/apperr"
	"github.com/skillsphere/backend/pkg/models"
	"github.com/skillsphere/backend/pkg/repository/mock"
)

func testSteps() []models.RoadmapStep {
	return []models.RoadmapStep{
		{Step: 1, Title: "Learn", Description: "Start here", Resources: []string{"Course A"}},
		{Step: 2, Title: "Build", Description: "Practice", Resources: []string{}},
	}
}

func testRequest() models.RoadmapRequest {
	return models.RoadmapRequest{
		CurrentRole:   "Backend Developer",
		DesiredRole:   "ML Engineer",
		CurrentSkills: []string{"Python", "SQL"},
	}
}

func TestSaveAndListRoundTrip(t *testing.T) {
	repo := mock.NewMockRoadmapRepo()
	svc := roadmap.NewService(repo, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, 7, testRequest(), testSteps())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("saved record has empty id")
	}
	if saved.OwnerID != 7 {
		t.Fatalf("owner id not set: %+v", saved)
	}
	if saved.CreatedAt.IsZero() {
		t.Fatalf("created_at not set")
	}

	recs, err := svc.List(ctx, 7)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if !reflect.DeepEqual(recs[0].Request, testRequest()) {
		t.Fatalf("request content changed: %+v", recs[0].Request)
	}
	if !reflect.DeepEqual(recs[0].Steps, testSteps()) {
		t.Fatalf("step content changed: %+v", recs[0].Steps)
	}
}

func TestSaveAssignsFreshIDs(t *testing.T) {
	repo := mock.NewMockRoadmapRepo()
	svc := roadmap.NewService(repo, nil)
	ctx := context.Background()

	a, err := svc.Save(ctx, 1, testRequest(), testSteps())
	if err != nil {
		t.Fatalf("Save #1: %v", err)
	}
	b, err := svc.Save(ctx, 1, testRequest(), testSteps())
	if err != nil {
		t.Fatalf("Save #2: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("regeneration reused id %s", a.ID)
	}
}

func TestSaveRejectsEmptySteps(t *testing.T) {
	svc := roadmap.NewService(mock.NewMockRoadmapRepo(), nil)

	if _, err := svc.Save(context.Background(), 1, testRequest(), nil); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListEmpty(t *testing.T) {
	svc := roadmap.NewService(mock.NewMockRoadmapRepo(), nil)

	recs, err := svc.List(context.Background(), 42)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty slice, got %#v", recs)
	}
}

func TestDeleteTwice(t *testing.T) {
	repo := mock.NewMockRoadmapRepo()
	svc := roadmap.NewService(repo, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, 3, testRequest(), testSteps())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := svc.Delete(ctx, 3, saved.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, 3, saved.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOtherOwner(t *testing.T) {
	repo := mock.NewMockRoadmapRepo()
	svc := roadmap.NewService(repo, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, 3, testRequest(), testSteps())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	err = svc.Delete(ctx, 99, saved.ID)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// the error must not confirm the record exists
	if msg := err.Error(); strings.Contains(msg, saved.ID) || strings.Contains(msg, "exist") {
		t.Fatalf("forbidden error leaks record identity: %q", msg)
	}

	// the record is untouched
	recs, err := svc.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("record was deleted by a non-owner")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	svc := roadmap.NewService(mock.NewMockRoadmapRepo(), nil)

	if err := svc.Delete(context.Background(), 1, "no-such-id"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
