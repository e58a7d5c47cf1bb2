package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	models "github.com/arcanalabs/tarot-backend/internal/models"
	platformdb "github.com/arcanalabs/tarot-backend/internal/platform/db"
	"github.com/arcanalabs/tarot-backend/pkg/logctx"
	"github.com/arcanalabs/tarot-backend/pkg/tool"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) Ledger {
	return &Service{db: db, log: log}
}

func (s *Service) DebitAndCreateReading(ctx context.Context, req *DebitRequest) (*DebitResult, error) {
	if req == nil || req.UserID == "" || req.IdempotencyKey == "" || req.CostCredits < 0 {
		return nil, ErrInvalidRequest
	}
	if !req.ReadingType.Valid() {
		return nil, fmt.Errorf("%w: unknown reading type %q", ErrInvalidRequest, req.ReadingType)
	}

	var result DebitResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replay check first: a prior success with this key returns the
		// stored reading without touching the balance.
		var prior models.Reading
		err := tx.Where("user_id = ? AND idempotency_key = ?", req.UserID, req.IdempotencyKey).
			First(&prior).Error
		if err == nil {
			balance, berr := s.balanceWithTx(tx, req.UserID)
			if berr != nil {
				return berr
			}
			result = DebitResult{ReadingID: prior.ID, NewBalance: balance, Replayed: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check idempotency key: %w", err)
		}

		acc, err := s.lockAccount(tx, req.UserID)
		if err != nil {
			return err
		}
		if acc.Balance < req.CostCredits {
			return ErrInsufficientCredits
		}

		reading := &models.Reading{
			ID:             tool.GenerateUUIDV7(),
			UserID:         req.UserID,
			ReadingType:    req.ReadingType,
			SpreadName:     req.SpreadName,
			Title:          req.Title,
			Cards:          datatypes.NewJSONSlice(req.Cards),
			Questions:      datatypes.NewJSONType(req.Questions),
			Interpretation: req.Interpretation,
			Status:         types.ReadingStatusCompleted,
			CostCredits:    req.CostCredits,
			Metadata:       datatypes.JSONMap(req.Metadata),
			IdempotencyKey: req.IdempotencyKey,
		}
		// A concurrent first attempt with the same key can win the race
		// between our replay check and this insert. The savepoint lets us
		// recover: on postgres a failed statement aborts the transaction,
		// so the replay lookup below needs the insert rolled back first.
		if err := tx.SavePoint("reading_insert").Error; err != nil {
			return fmt.Errorf("failed to create savepoint: %w", err)
		}
		if err := tx.Create(reading).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if rerr := tx.RollbackTo("reading_insert").Error; rerr != nil {
					return fmt.Errorf("failed to roll back reading insert: %w", rerr)
				}
				var winner models.Reading
				if ferr := tx.Where("user_id = ? AND idempotency_key = ?", req.UserID, req.IdempotencyKey).
					First(&winner).Error; ferr == nil {
					balance, berr := s.balanceWithTx(tx, req.UserID)
					if berr != nil {
						return berr
					}
					result = DebitResult{ReadingID: winner.ID, NewBalance: balance, Replayed: true}
					return nil
				}
			}
			return fmt.Errorf("failed to create reading: %w", err)
		}

		entry := &models.CreditLedgerEntry{
			ID:           tool.GenerateUUIDV7(),
			UserID:       req.UserID,
			DeltaCredits: -req.CostCredits,
			Reason:       types.LedgerReasonReadingDebit,
			RefType:      "reading",
			RefID:        &reading.ID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create ledger entry: %w", err)
		}

		acc.Balance -= req.CostCredits
		if err := tx.Save(acc).Error; err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}

		result = DebitResult{ReadingID: reading.ID, NewBalance: acc.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("reading_debit",
		"user_id", req.UserID,
		"reading_id", result.ReadingID,
		"cost", req.CostCredits,
		"replayed", result.Replayed,
	)
	return &result, nil
}

func (s *Service) AwardCredits(ctx context.Context, req *AwardRequest) (int64, error) {
	var balance int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		balance, err = s.AwardCreditsTx(ctx, tx, req)
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *Service) AwardCreditsTx(ctx context.Context, tx *gorm.DB, req *AwardRequest) (int64, error) {
	if req == nil || req.UserID == "" || req.Delta <= 0 {
		return 0, ErrInvalidRequest
	}

	acc, err := s.lockAccount(tx, req.UserID)
	if err != nil {
		return 0, err
	}

	entry := &models.CreditLedgerEntry{
		ID:           tool.GenerateUUIDV7(),
		UserID:       req.UserID,
		DeltaCredits: req.Delta,
		Reason:       req.Reason,
		RefType:      req.RefType,
		RefID:        req.RefID,
	}
	if err := tx.Create(entry).Error; err != nil {
		return 0, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	acc.Balance += req.Delta
	if err := tx.Save(acc).Error; err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("credits_awarded",
		"user_id", req.UserID, "delta", req.Delta, "reason", req.Reason)
	return acc.Balance, nil
}

func (s *Service) GetBalance(ctx context.Context, userID string) (int64, error) {
	var acc models.CreditAccount
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

func (s *Service) ListEntries(ctx context.Context, userID string, limit, offset int) ([]*models.CreditLedgerEntry, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.CreditLedgerEntry{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var rows []*models.CreditLedgerEntry
	if err := q.Order("id desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return rows, total, nil
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

func (s *Service) ScanEntries(ctx context.Context, req *ScanEntriesRequest) (*ScanEntriesResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.CreditLedgerEntry{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var rows []*models.CreditLedgerEntry
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &ScanEntriesResponse{Items: rows, Total: total}, nil
}

// lockAccount loads the per-user account row under a row lock, creating a
// zero-balance row on first contact. The lock is what serializes concurrent
// check-then-act sequences for one user.
func (s *Service) lockAccount(tx *gorm.DB, userID string) (*models.CreditAccount, error) {
	var acc models.CreditAccount
	err := platformdb.LockForUpdate(tx).Where("user_id = ?", userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		acc = models.CreditAccount{ID: tool.GenerateUUIDV7(), UserID: userID}
		if cerr := tx.Create(&acc).Error; cerr != nil {
			return nil, fmt.Errorf("failed to create credit account: %w", cerr)
		}
		return &acc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock credit account: %w", err)
	}
	return &acc, nil
}

func (s *Service) balanceWithTx(tx *gorm.DB, userID string) (int64, error) {
	var acc models.CreditAccount
	err := tx.Where("user_id = ?", userID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}
