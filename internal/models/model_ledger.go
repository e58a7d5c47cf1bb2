package models

import (
	"time"

	"github.com/arcanalabs/tarot-backend/pkg/types"
)

// CreditAccount 用户积分账户，作为按用户加锁的锚点
// Balance always equals the sum of the user's ledger deltas; both are
// written in the same transaction.
type CreditAccount struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Balance   int64     `gorm:"column:balance;type:bigint;not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CreditAccount) TableName() string { return "credit_accounts" }

// CreditLedgerEntry is an append-only signed credit movement. Rows are never
// updated or deleted.
type CreditLedgerEntry struct {
	ID           string             `gorm:"column:id;type:uuid;primary_key;index:idx_ledger_user_id_id,priority:2,sort:desc" json:"id"`
	UserID       string             `gorm:"column:user_id;type:varchar(64);not null;index:idx_ledger_user_id_id,priority:1" json:"user_id"`
	DeltaCredits int64              `gorm:"column:delta_credits;type:bigint;not null" json:"delta_credits"`
	Reason       types.LedgerReason `gorm:"column:reason;type:varchar(64);not null" json:"reason"`
	RefType      string             `gorm:"column:ref_type;type:varchar(64)" json:"ref_type"`
	RefID        *string            `gorm:"column:ref_id;type:varchar(128)" json:"ref_id"`
	CreatedAt    time.Time          `json:"created_at"`
}

func (CreditLedgerEntry) TableName() string { return "credit_ledger_entries" }
