package app

import (
	"time"

	"github.com/arcanalabs/tarot-backend/internal/app/api/server"
	"github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	"github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	"github.com/arcanalabs/tarot-backend/internal/app/service/reading"
	"github.com/arcanalabs/tarot-backend/internal/app/service/statistics"
	"github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	"github.com/arcanalabs/tarot-backend/internal/platform/db"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	"github.com/arcanalabs/tarot-backend/pkg/logger"
	"github.com/arcanalabs/tarot-backend/pkg/mailer"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	cards.Module,
	ledger.Module,
	reading.Module,
	statistics.Module,
	webhookingest.Module,
	mailer.Module,
)
