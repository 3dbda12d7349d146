package s3store

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/skillsphere/backend/internal/config"
	"github.com/skillsphere/backend/pkg/repository"
)

// keyPrefix namespaces all roadmap documents inside the bucket. Keys are flat
// (`roadmaps/<id>`) so a record can be fetched by id alone; the owning user id
// lives inside the document, mirroring how the identity and artifact stores
// stay independent.
const keyPrefix = "roadmaps/"

// s3API is the slice of the S3 client the store uses. Tests substitute a fake.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Store implements repository.RoadmapRepo on an S3-compatible object store.
// Each roadmap record is one JSON object; writes are single-object and
// therefore atomic at the store.
type Store struct {
	client s3API
	bucket string
	logger *slog.Logger
}

var _ repository.RoadmapRepo = (*Store)(nil)

// New builds a Store against the configured S3-compatible endpoint (MinIO in
// development, any S3 API in production).
func New(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, cfg.Bucket, logger), nil
}

// NewWithClient wires an existing client, used by tests.
func NewWithClient(client s3API, bucket string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return &Store{client: client, bucket: bucket, logger: logger}
}

func objectKey(id string) string {
	return keyPrefix + id
}
