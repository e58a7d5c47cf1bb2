package webhookingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	models "github.com/arcanalabs/tarot-backend/internal/models"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/logctx"
	"github.com/arcanalabs/tarot-backend/pkg/mailer"
	"github.com/arcanalabs/tarot-backend/pkg/tool"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// Service ingests payment-provider notifications at-least-once and applies
// each credit award at-most-once.
type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	ledger ledgersvc.Ledger
	mail   *mailer.Mailer
	log    *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, lg ledgersvc.Ledger, mail *mailer.Mailer, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, ledger: lg, mail: mail, log: log}
}

type IngestResult struct {
	// Idempotent is true when the event id had been seen before; the call
	// succeeded without side effects.
	Idempotent bool   `json:"idempotent"`
	EventID    string `json:"event_id"`
	UserID     string `json:"user_id,omitempty"`
	NewBalance int64  `json:"new_balance,omitempty"`
}

// HandleEvent verifies, records and applies one provider notification. The
// seen-marker insert and the credit award commit in the same transaction, so
// a crash can never leave an event marked seen with its award lost.
func (s *Service) HandleEvent(ctx context.Context, rawBody []byte, signatureHeader string) (*IngestResult, error) {
	if !VerifySignature(rawBody, signatureHeader, s.cfg.Webhook.Secret) {
		return nil, ErrInvalidSignature
	}

	payload, err := ParsePayload(rawBody)
	if err != nil {
		return nil, err
	}

	provider := s.cfg.Webhook.Provider
	result := &IngestResult{EventID: payload.EventID(), UserID: payload.UserID}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := &models.WebhookEvent{
			ID:       tool.GenerateUUIDV7(),
			Provider: provider,
			EventID:  payload.EventID(),
			Payload:  datatypes.JSON(rawBody),
		}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "event_id"}},
			DoNothing: true,
		}).Create(event)
		if ins.Error != nil {
			return fmt.Errorf("failed to record webhook event: %w", ins.Error)
		}
		if ins.RowsAffected == 0 {
			// Replay: the row already exists, earlier delivery owns the award.
			result.Idempotent = true
			return nil
		}

		balance, err := s.applyAward(ctx, tx, event, payload)
		if err != nil {
			return err
		}
		result.NewBalance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("webhook_event_handled",
		"provider", provider,
		"event_id", result.EventID,
		"idempotent", result.Idempotent,
	)

	if !result.Idempotent && s.cfg.SendPurchaseMail && payload.Email != "" {
		go s.sendConfirmation(payload)
	}
	return result, nil
}

// applyAward inserts the payment record, appends the ledger award and marks
// the event processed, all on the caller's transaction.
func (s *Service) applyAward(ctx context.Context, tx *gorm.DB, event *models.WebhookEvent, payload *EventPayload) (int64, error) {
	record := &models.PaymentRecord{
		ID:          tool.GenerateUUIDV7(),
		Provider:    event.Provider,
		EventID:     event.EventID,
		UserID:      payload.UserID,
		AmountCents: payload.AmountCents(),
		Currency:    payload.Currency,
		Status:      payload.Status,
		Credits:     payload.Credits,
	}
	if err := tx.Create(record).Error; err != nil {
		return 0, fmt.Errorf("failed to create payment record: %w", err)
	}

	balance, err := s.ledger.AwardCreditsTx(ctx, tx, &ledgersvc.AwardRequest{
		UserID:  payload.UserID,
		Delta:   payload.Credits,
		Reason:  types.LedgerReasonPurchase,
		RefType: "webhook_event",
		RefID:   &event.ID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to award credits: %w", err)
	}

	now := time.Now()
	if err := tx.Model(&models.WebhookEvent{}).Where("id = ?", event.ID).
		Update("processed_at", &now).Error; err != nil {
		return 0, fmt.Errorf("failed to mark event processed: %w", err)
	}
	return balance, nil
}

// ReconcileUnprocessed re-applies awards for events that were marked seen but
// never processed (rows written by deployments that split the two steps).
// Returns the number of repaired events.
func (s *Service) ReconcileUnprocessed(ctx context.Context) (int, error) {
	var events []*models.WebhookEvent
	if err := s.db.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("created_at asc").
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("failed to list unprocessed events: %w", err)
	}

	repaired := 0
	for _, event := range events {
		payload, err := ParsePayload([]byte(event.Payload))
		if err != nil {
			s.markFailed(ctx, event.ID, err)
			continue
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// The award may have committed while the processed_at update was
			// lost; the payment record tells the two cases apart.
			var count int64
			if err := tx.Model(&models.PaymentRecord{}).
				Where("provider = ? AND event_id = ?", event.Provider, event.EventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				now := time.Now()
				return tx.Model(&models.WebhookEvent{}).Where("id = ?", event.ID).
					Update("processed_at", &now).Error
			}
			_, err := s.applyAward(ctx, tx, event, payload)
			return err
		})
		if err != nil {
			s.markFailed(ctx, event.ID, err)
			continue
		}
		repaired++
	}

	logctx.FromCtx(ctx, s.log).Infow("webhook_reconcile_done",
		"candidates", len(events), "repaired", repaired)
	return repaired, nil
}

func (s *Service) markFailed(ctx context.Context, eventID string, cause error) {
	if err := s.db.WithContext(ctx).Model(&models.WebhookEvent{}).Where("id = ?", eventID).
		Update("processing_error", cause.Error()).Error; err != nil {
		s.log.Errorw("failed to record processing error", "event_id", eventID, "err", err)
	}
}

func (s *Service) sendConfirmation(payload *EventPayload) {
	subject := "Kredi yüklemeniz tamamlandı"
	body := fmt.Sprintf("<p>%d kredi hesabınıza eklendi.</p>", payload.Credits)
	if err := s.mail.Send(payload.Email, subject, body); err != nil {
		s.log.Warnw("purchase mail failed", "event_id", payload.EventID(), "err", err)
	}
}
