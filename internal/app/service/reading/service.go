package reading

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cardsvc "github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	models "github.com/arcanalabs/tarot-backend/internal/models"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/logctx"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

var (
	ErrReadingNotFound = errors.New("reading not found")
	ErrInvalidStatus   = errors.New("invalid reading status")
)

// CreateRequest is a reading submission from one of the spread mini-apps.
type CreateRequest struct {
	UserID         string                   `json:"-"`
	ReadingType    types.SpreadType         `json:"reading_type"`
	SpreadName     string                   `json:"spread_name"`
	Title          string                   `json:"title"`
	Locale         types.Locale             `json:"locale"`
	Interpretation string                   `json:"interpretation"`
	Cards          []types.DrawnCard        `json:"cards"`
	Questions      *models.ReadingQuestions `json:"questions"`
	Metadata       map[string]any           `json:"metadata"`
	IdempotencyKey string                   `json:"idempotency_key"`
}

type Service struct {
	cfg    *config.Config
	db     *gorm.DB
	ledger ledgersvc.Ledger
	cards  *cardsvc.Service
	log    *zap.SugaredLogger
}

func NewService(cfg *config.Config, db *gorm.DB, lg ledgersvc.Ledger, cards *cardsvc.Service, log *zap.SugaredLogger) *Service {
	return &Service{cfg: cfg, db: db, ledger: lg, cards: cards, log: log}
}

// Create resolves the spread's credit cost and delegates the atomic
// debit-and-persist to the ledger.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*ledgersvc.DebitResult, error) {
	locale := req.Locale
	if !locale.Valid() {
		locale = types.LocaleTurkish
	}

	// Fill canonical and localized names from the catalog when the client
	// sent bare card ids.
	for i := range req.Cards {
		card, err := s.cards.ByID(req.Cards[i].ID)
		if err != nil {
			return nil, fmt.Errorf("unknown card id %d: %w", req.Cards[i].ID, err)
		}
		if req.Cards[i].Name == "" {
			req.Cards[i].Name = card.Name
		}
		if req.Cards[i].LocalizedName == "" {
			req.Cards[i].LocalizedName = card.LocalizedName(locale)
		}
	}

	cost := s.cfg.SpreadCost(req.ReadingType)
	res, err := s.ledger.DebitAndCreateReading(ctx, &ledgersvc.DebitRequest{
		UserID:         req.UserID,
		ReadingType:    req.ReadingType,
		SpreadName:     req.SpreadName,
		Title:          req.Title,
		Interpretation: req.Interpretation,
		Cards:          req.Cards,
		Questions:      req.Questions,
		CostCredits:    cost,
		Metadata:       req.Metadata,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ListByUser pages a user's readings, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Reading, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&models.Reading{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count readings: %w", err)
	}

	var rows []*models.Reading
	if err := q.Order("id desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list readings: %w", err)
	}
	return rows, total, nil
}

// GetByID returns one reading. A non-empty ownerID restricts the lookup to
// that user's readings (admin callers pass "").
func (s *Service) GetByID(ctx context.Context, id, ownerID string) (*models.Reading, error) {
	q := s.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != "" {
		q = q.Where("user_id = ?", ownerID)
	}
	var r models.Reading
	if err := q.First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReadingNotFound
		}
		return nil, err
	}
	return &r, nil
}

// UpdateStatus is the only post-creation mutation: admin-set status and notes.
func (s *Service) UpdateStatus(ctx context.Context, id string, status types.ReadingStatus, adminNotes string) (*models.Reading, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	var r models.Reading
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReadingNotFound
			}
			return err
		}
		r.Status = status
		r.AdminNotes = adminNotes
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("reading_status_updated", "reading_id", id, "status", status)
	return &r, nil
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

type ScanReadingsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanReadingsResponse struct {
	Items []*models.Reading `json:"items"`
	Total int64             `json:"total"`
}

// ScanReadings implements paginated admin listing with filters.
func (s *Service) ScanReadings(ctx context.Context, req *ScanReadingsRequest) (*ScanReadingsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Reading{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count readings: %w", err)
	}

	var rows []*models.Reading
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}

	return &ScanReadingsResponse{Items: rows, Total: total}, nil
}
