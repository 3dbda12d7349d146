package repository

import (
	"context"

	"github.com/skillsphere/backend/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoadmapRepo is the artifact-store contract. Implementations do not enforce
// ownership; Get returns whatever record the id names and callers perform
// the owner check themselves.
type RoadmapRepo interface {
	CreateRoadmap(ctx context.Context, rec *models.RoadmapRecord) error
	GetRoadmap(ctx context.Context, id string) (*models.RoadmapRecord, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.RoadmapRecord, error)
	DeleteRoadmap(ctx context.Context, id string) error
}

type SchemaRepo interface {
	CreateSchema(ctx context.Context, version, description, schemaJSON string) (int64, error)
	GetSchemaByVersion(ctx context.Context, version string) (*models.Schema, error)
	ListSchemas(ctx context.Context) ([]models.Schema, error)
	DeleteSchema(ctx context.Context, version string) error
}

type TemplateRepo interface {
	CreateTemplate(ctx context.Context, name, version, templateText string, schemaVersion *string, metadata *string) (int64, error)
	GetTemplate(ctx context.Context, name, version string) (*models.Template, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	DeleteTemplate(ctx context.Context, name, version string) error
}
