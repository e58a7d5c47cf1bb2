package ledger

import (
	"context"

	"gorm.io/gorm"

	models "github.com/arcanalabs/tarot-backend/internal/models"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// DebitRequest carries everything needed to spend credits and persist the
// resulting reading as one logical unit.
type DebitRequest struct {
	UserID         string                   `json:"user_id"`
	ReadingType    types.SpreadType         `json:"reading_type"`
	SpreadName     string                   `json:"spread_name"`
	Title          string                   `json:"title"`
	Interpretation string                   `json:"interpretation"`
	Cards          []types.DrawnCard        `json:"cards"`
	Questions      *models.ReadingQuestions `json:"questions"`
	CostCredits    int64                    `json:"cost_credits"`
	Metadata       map[string]any           `json:"metadata"`
	// IdempotencyKey is generated by the caller per logical attempt; a retry
	// after a timeout must reuse the same key.
	IdempotencyKey string `json:"idempotency_key"`
}

type DebitResult struct {
	ReadingID  string `json:"reading_id"`
	NewBalance int64  `json:"new_balance"`
	// Replayed is true when a prior call with the same idempotency key
	// already charged the user; the stored result is returned unchanged.
	Replayed bool `json:"replayed"`
}

type AwardRequest struct {
	UserID  string             `json:"user_id"`
	Delta   int64              `json:"delta"`
	Reason  types.LedgerReason `json:"reason"`
	RefType string             `json:"ref_type"`
	RefID   *string            `json:"ref_id"`
}

// Ledger owns every credit mutation. Check-then-act is serialized per user
// inside a single database transaction; callers never see partial effects.
type Ledger interface {
	// DebitAndCreateReading spends req.CostCredits and persists the reading
	// atomically. Replays of the same idempotency key return the original
	// result without further mutation.
	DebitAndCreateReading(ctx context.Context, req *DebitRequest) (*DebitResult, error)
	// AwardCredits appends a positive ledger entry in its own transaction.
	AwardCredits(ctx context.Context, req *AwardRequest) (int64, error)
	// AwardCreditsTx is AwardCredits running inside a caller-owned
	// transaction (webhook ingestion wants the award and the event marker to
	// commit together).
	AwardCreditsTx(ctx context.Context, tx *gorm.DB, req *AwardRequest) (int64, error)
	// GetBalance returns the current balance, zero for unknown users.
	GetBalance(ctx context.Context, userID string) (int64, error)
	// ListEntries pages the user's ledger, newest first.
	ListEntries(ctx context.Context, userID string, limit, offset int) ([]*models.CreditLedgerEntry, int64, error)
	// ScanEntries is the admin listing with filters.
	ScanEntries(ctx context.Context, req *ScanEntriesRequest) (*ScanEntriesResponse, error)
}

type ScanEntriesRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanEntriesResponse struct {
	Items []*models.CreditLedgerEntry `json:"items"`
	Total int64                       `json:"total"`
}
