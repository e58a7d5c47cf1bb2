package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	models "github.com/arcanalabs/tarot-backend/internal/models"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// Statistic types served to the admin dashboard
type StatisticType string

const (
	StatisticTypeDailyReadingCount   StatisticType = "daily_reading_count"
	StatisticTypeDailyCreditsDebited StatisticType = "daily_credits_debited"
	StatisticTypeDailyCreditsAwarded StatisticType = "daily_credits_awarded"
	StatisticTypeReadingsBySpread    StatisticType = "readings_by_spread"
	StatisticTypeTotalReadingCount   StatisticType = "total_reading_count"
)

var supportedTypes = []StatisticType{
	StatisticTypeDailyReadingCount,
	StatisticTypeDailyCreditsDebited,
	StatisticTypeDailyCreditsAwarded,
	StatisticTypeReadingsBySpread,
	StatisticTypeTotalReadingCount,
}

type StatisticRequest struct {
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	DataItems []StatisticType `json:"data_items"`
}

type DataPoint struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

type StatisticResponse struct {
	Items map[StatisticType][]DataPoint `json:"items"`
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// GetStatistics computes the requested series over [StartDate, EndDate).
func (s *Service) GetStatistics(ctx context.Context, req *StatisticRequest) (*StatisticResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.EndDate.IsZero() {
		req.EndDate = time.Now()
	}
	if req.StartDate.IsZero() {
		req.StartDate = req.EndDate.AddDate(0, -1, 0)
	}
	items := req.DataItems
	if len(items) == 0 {
		items = supportedTypes
	}

	out := &StatisticResponse{Items: make(map[StatisticType][]DataPoint, len(items))}
	for _, item := range items {
		if !lo.Contains(supportedTypes, item) {
			return nil, fmt.Errorf("unsupported statistic type: %s", item)
		}
		points, err := s.compute(ctx, item, req.StartDate, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s: %w", item, err)
		}
		out.Items[item] = points
	}
	return out, nil
}

type dayRow struct {
	Day   string
	Value int64
}

func (s *Service) compute(ctx context.Context, item StatisticType, from, to time.Time) ([]DataPoint, error) {
	switch item {
	case StatisticTypeDailyReadingCount:
		return s.dailyRows(ctx, s.db.WithContext(ctx).Model(&models.Reading{}).
			Select("date(created_at) as day, count(*) as value").
			Where("created_at >= ? AND created_at < ?", from, to))
	case StatisticTypeDailyCreditsDebited:
		return s.dailyRows(ctx, s.db.WithContext(ctx).Model(&models.CreditLedgerEntry{}).
			Select("date(created_at) as day, -sum(delta_credits) as value").
			Where("delta_credits < 0 AND created_at >= ? AND created_at < ?", from, to))
	case StatisticTypeDailyCreditsAwarded:
		return s.dailyRows(ctx, s.db.WithContext(ctx).Model(&models.CreditLedgerEntry{}).
			Select("date(created_at) as day, sum(delta_credits) as value").
			Where("delta_credits > 0 AND created_at >= ? AND created_at < ?", from, to))
	case StatisticTypeReadingsBySpread:
		var rows []struct {
			ReadingType types.SpreadType
			Value       int64
		}
		err := s.db.WithContext(ctx).Model(&models.Reading{}).
			Select("reading_type, count(*) as value").
			Where("created_at >= ? AND created_at < ?", from, to).
			Group("reading_type").
			Order("value desc").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		return lo.Map(rows, func(r struct {
			ReadingType types.SpreadType
			Value       int64
		}, _ int) DataPoint {
			return DataPoint{Key: string(r.ReadingType), Value: r.Value}
		}), nil
	case StatisticTypeTotalReadingCount:
		var total int64
		if err := s.db.WithContext(ctx).Model(&models.Reading{}).Count(&total).Error; err != nil {
			return nil, err
		}
		return []DataPoint{{Key: "total", Value: total}}, nil
	}
	return nil, fmt.Errorf("unreachable statistic type: %s", item)
}

func (s *Service) dailyRows(ctx context.Context, q *gorm.DB) ([]DataPoint, error) {
	var rows []dayRow
	if err := q.Group("date(created_at)").Order("day asc").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(r dayRow, _ int) DataPoint {
		return DataPoint{Key: r.Day, Value: r.Value}
	}), nil
}

var Module = fx.Options(
	fx.Provide(New),
)
