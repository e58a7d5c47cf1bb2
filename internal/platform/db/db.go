package db

import (
	"context"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arcanalabs/tarot-backend/internal/models"
	cfgpkg "github.com/arcanalabs/tarot-backend/pkg/config"
	gormzap "github.com/arcanalabs/tarot-backend/pkg/gormlog"
)

// NewDB opens a GORM connection. Postgres is the deployment target; DSNs that
// are not postgres URLs are treated as sqlite paths (":memory:" in tests).
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	dsn := strings.TrimSpace(cfg.Database.DSN)
	if dsn == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}

	dialector := dialectorFor(dsn)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormzap.New(l), TranslateError: true})
	if err != nil {
		l.Errorf("failed to connect database: %v", err)
		return nil, err
	}
	l.Infow("connected to database", "dialect", db.Dialector.Name())
	return db, nil
}

func dialectorFor(dsn string) gorm.Dialector {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") || strings.Contains(lower, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate runs GORM migrations on startup
func AutoMigrate(l *zap.SugaredLogger, db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		l.Errorf("automigrate failed: %v", err)
		return err
	}
	l.Infow("automigrate completed")
	return nil
}

// Migrate creates or updates the schema for every persistent model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CreditAccount{},
		&models.CreditLedgerEntry{},
		&models.Reading{},
		&models.WebhookEvent{},
		&models.PaymentRecord{},
	)
}

// registerDBClose ensures the underlying *sql.DB is closed on shutdown
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing database connection pool")
			return sqlDB.Close()
		},
	})
}
