package s3store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/skillsphere/backend/pkg/apperr"
	"github.com/skillsphere/backend/pkg/models"
)

// CreateRoadmap writes the record as a single JSON object. The caller has
// already assigned the id and timestamp.
func (s *Store) CreateRoadmap(ctx context.Context, rec *models.RoadmapRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: record without id", apperr.ErrStorage)
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: marshal roadmap: %v", apperr.ErrStorage, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(rec.ID)),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("%w: put roadmap %s: %v", apperr.ErrStorage, rec.ID, err)
	}

	return nil
}

// GetRoadmap returns the record for id, or (nil, nil) when no such object
// exists.
func (s *Store) GetRoadmap(ctx context.Context, id string) (*models.RoadmapRecord, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get roadmap %s: %v", apperr.ErrStorage, id, err)
	}
	defer out.Body.Close()

	return decodeRecord(out.Body, id)
}

// ListByOwner scans the roadmap keyspace and returns the owner's records
// newest-first. Ties on the creation timestamp keep listing order (stable).
func (s *Store) ListByOwner(ctx context.Context, ownerID int64) ([]models.RoadmapRecord, error) {
	records := []models.RoadmapRecord{}

	var token *string
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(keyPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: list roadmaps: %v", apperr.ErrStorage, err)
		}

		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			rec, err := s.getByKey(ctx, *obj.Key)
			if err != nil {
				return nil, err
			}
			if rec == nil {
				// deleted between list and get
				continue
			}
			if rec.OwnerID == ownerID {
				records = append(records, *rec)
			}
		}

		if page.IsTruncated == nil || !*page.IsTruncated {
			break
		}
		token = page.NextContinuationToken
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// DeleteRoadmap removes the object. Deleting an absent key is not an error
// here; existence and ownership are checked by the caller first.
func (s *Store) DeleteRoadmap(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(id)),
	})
	if err != nil {
		return fmt.Errorf("%w: delete roadmap %s: %v", apperr.ErrStorage, id, err)
	}
	return nil
}

func (s *Store) getByKey(ctx context.Context, key string) (*models.RoadmapRecord, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get object %s: %v", apperr.ErrStorage, key, err)
	}
	defer out.Body.Close()

	rec, err := decodeRecord(out.Body, key)
	if err != nil {
		// a corrupt document should not break listing for the whole user
		s.logger.Error("skipping undecodable roadmap object", slog.String("key", key), slog.Any("err", err))
		return nil, nil
	}
	return rec, nil
}

func decodeRecord(r io.Reader, ref string) (*models.RoadmapRecord, error) {
	var rec models.RoadmapRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: decode roadmap %s: %v", apperr.ErrStorage, ref, err)
	}
	return &rec, nil
}
