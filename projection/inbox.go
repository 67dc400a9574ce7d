package projection

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/merchantdata/estate_reporting_backend/models"
	"github.com/merchantdata/estate_reporting_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InboxProcessor drains the projection inbox in the background. Push
// deliveries only persist the envelope; this worker does the projection
// work, so a burst of deliveries cannot stall the push endpoint.
type InboxProcessor struct {
	DB         *gorm.DB
	Logger     *logrus.Logger
	Dispatcher *Dispatcher
	Locker     *redislock.Client
	WorkerID   string
	BatchSize  int
	Interval   time.Duration
	LockTTL    time.Duration
}

func NewInboxProcessor(db *gorm.DB, logger *logrus.Logger, dispatcher *Dispatcher, locker *redislock.Client) *InboxProcessor {
	return &InboxProcessor{
		DB:         db,
		Logger:     logger,
		Dispatcher: dispatcher,
		Locker:     locker,
		WorkerID:   "direct-" + time.Now().Format("20060102-150405.000"),
		BatchSize:  50,
		Interval:   2 * time.Second,
		LockTTL:    30 * time.Second,
	}
}

func (p *InboxProcessor) Run(ctx context.Context) {
	if p == nil || p.DB == nil || p.Dispatcher == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval):
		}
	}
}

func (p *InboxProcessor) processOnce(ctx context.Context) {
	now := time.Now().UTC()
	staleBefore := now.Add(-p.LockTTL)

	var claimed []models.ProjectionInboxRecord
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Where("is_processed = 0").
			Where("(locked_at IS NULL OR locked_at <= ?)", staleBefore).
			Order("id ASC").
			Limit(p.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		if len(claimed) == 0 {
			return nil
		}
		for i := range claimed {
			claimed[i].LockedAt = &now
			claimed[i].LockedBy = &p.WorkerID
			if err := tx.Model(&models.ProjectionInboxRecord{}).
				Where("id = ?", claimed[i].ID).
				Updates(map[string]interface{}{
					"locked_at": claimed[i].LockedAt,
					"locked_by": claimed[i].LockedBy,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if p.Logger != nil {
			p.Logger.WithFields(logrus.Fields{
				"field":     "InboxProcessor",
				"worker_id": p.WorkerID,
			}).Error("inbox claim failed: " + err.Error())
		}
		return
	}
	if len(claimed) == 0 {
		return
	}

	for _, rec := range claimed {
		p.processRecord(ctx, rec)
	}
}

func (p *InboxProcessor) processRecord(ctx context.Context, rec models.ProjectionInboxRecord) {
	procCtx := utils.SetEstateIdInContext(ctx, rec.EstateId)
	procCtx = utils.SetCorrelationIdInContext(procCtx, rec.CorrelationId)
	procCtx = utils.SetStreamPositionInContext(procCtx, rec.StreamPosition)

	err := WithEstateStreamLock(procCtx, p.Locker, rec.EstateId, func(lockedCtx context.Context) error {
		_, applyErr := p.Dispatcher.ApplyEvent(lockedCtx, rec.EventType, rec.Payload)
		return applyErr
	})
	if err != nil {
		errMsg := err.Error()
		updates := map[string]interface{}{
			"last_process_error": &errMsg,
			"locked_at":          nil,
			"locked_by":          nil,
		}
		// A payload that cannot be decoded will never succeed; park it
		// instead of retrying forever.
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			updates["is_processed"] = true
		}
		_ = p.DB.WithContext(ctx).Model(&models.ProjectionInboxRecord{}).
			Where("id = ?", rec.ID).
			Updates(updates).Error
		if p.Logger != nil {
			p.Logger.WithFields(logrus.Fields{
				"field":      "InboxProcessor",
				"estate_id":  rec.EstateId,
				"event_id":   rec.EventId,
				"event_type": rec.EventType,
				"record_id":  rec.ID,
			}).Error("inbox processing failed: " + errMsg)
		}
		return
	}

	_ = p.DB.WithContext(ctx).Model(&models.ProjectionInboxRecord{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"is_processed": true,
			"locked_at":    nil,
			"locked_by":    nil,
		}).Error
}
