package audit

import (
	"context"
	"fmt"

	"bucket-manager/core/middleware/rayid"
	"bucket-manager/feature/objects"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultLimit is the number of events returned when no limit is given.
const DefaultLimit = 50

// Make sure *Service satisfies objects.Recorder.
var _ objects.Recorder = (*Service)(nil)

// Service writes and reads the audit journal.
type Service struct {
	db     *gorm.DB
	bucket string
	logger *zap.Logger
}

// NewService creates a new audit service for bucket.
func NewService(db *gorm.DB, bucket string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		bucket: bucket,
		logger: logger,
	}
}

// Migrate creates or updates the journal table.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&Event{}); err != nil {
		return fmt.Errorf("failed to migrate audit table: %w", err)
	}
	return nil
}

// Record stores the outcome of an operation. Journal failures are logged and
// never affect the operation itself.
func (s *Service) Record(ctx context.Context, op, key, path string, err error) {
	ev := Event{
		Bucket:    s.bucket,
		Operation: op,
		Key:       key,
		LocalPath: path,
		Outcome:   OutcomeOK,
		RayID:     rayid.FromContext(ctx),
	}
	if err != nil {
		ev.Outcome = OutcomeFailed
		if kind := objects.KindOf(err); kind != nil {
			ev.Outcome = kind.Error()
		}
		ev.Error = err.Error()
	}

	// A cancelled operation context must not lose the journal entry.
	if dbErr := s.db.WithContext(context.WithoutCancel(ctx)).Create(&ev).Error; dbErr != nil {
		s.logger.Warn("Failed to record audit event",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(dbErr),
		)
	}
}

// Recent returns up to limit events for the bucket, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var events []Event
	err := s.db.WithContext(ctx).
		Where("bucket = ?", s.bucket).
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read audit events: %w", err)
	}
	return events, nil
}
