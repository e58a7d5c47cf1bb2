package models

import "time"

// PaymentRecord 支付流水，由 webhook 写入
type PaymentRecord struct {
	ID          string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider    string    `gorm:"column:provider;type:varchar(64);not null" json:"provider"`
	EventID     string    `gorm:"column:event_id;type:varchar(128);not null;index" json:"event_id"`
	UserID      string    `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	AmountCents int64     `gorm:"column:amount_cents;type:bigint;not null" json:"amount_cents"`
	Currency    string    `gorm:"column:currency;type:varchar(16);not null" json:"currency"`
	Status      string    `gorm:"column:status;type:varchar(32);not null" json:"status"`
	Credits     int64     `gorm:"column:credits;type:bigint;not null" json:"credits"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PaymentRecord) TableName() string { return "payment_records" }
