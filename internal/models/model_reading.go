package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/arcanalabs/tarot-backend/pkg/types"
)

// ReadingQuestions holds the structured free-form answers collected by the
// spread mini-apps before the cards are drawn.
type ReadingQuestions struct {
	PersonalInfo map[string]string `json:"personal_info,omitempty"`
	Concern      string            `json:"concern,omitempty"`
	Understand   string            `json:"understanding,omitempty"`
	Emotional    string            `json:"emotional,omitempty"`
}

// Reading 塔罗牌解读记录，创建后除管理员字段外不可变
type Reading struct {
	ID          string           `gorm:"column:id;primary_key;type:uuid;index:idx_reading_user_id_id,priority:2,sort:desc" json:"id"`
	UserID      string           `gorm:"column:user_id;type:varchar(64);not null;index:idx_reading_user_id_id,priority:1;uniqueIndex:unique_user_idempotency,priority:1" json:"user_id"`
	ReadingType types.SpreadType `gorm:"column:reading_type;type:varchar(64);not null;index" json:"reading_type"`
	SpreadName  string           `gorm:"column:spread_name;type:varchar(128);not null" json:"spread_name"`
	Title       string           `gorm:"column:title;type:varchar(256)" json:"title"`
	// Cards is the ordered list of drawn cards.
	Cards          datatypes.JSONSlice[types.DrawnCard]  `gorm:"column:cards;type:jsonb" json:"cards"`
	Questions      datatypes.JSONType[*ReadingQuestions] `gorm:"column:questions;type:jsonb" json:"questions"`
	Interpretation string                                `gorm:"column:interpretation;type:text" json:"interpretation"`
	Status         types.ReadingStatus                   `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CostCredits    int64                                 `gorm:"column:cost_credits;type:bigint;not null" json:"cost_credits"`
	Metadata       datatypes.JSONMap                     `gorm:"column:metadata;type:jsonb;default:'{}'" json:"metadata"`
	// IdempotencyKey is caller-generated, unique per logical attempt.
	IdempotencyKey string `gorm:"column:idempotency_key;type:varchar(128);not null;uniqueIndex:unique_user_idempotency,priority:2" json:"idempotency_key"`
	// AdminNotes is the only free-text field mutable after creation.
	AdminNotes string    `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Reading) TableName() string { return "readings" }
