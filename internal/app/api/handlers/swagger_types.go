package handlers

import (
	ledgersvc "github.com/arcanalabs/tarot-backend/internal/app/service/ledger"
	readingsvc "github.com/arcanalabs/tarot-backend/internal/app/service/reading"
	"github.com/arcanalabs/tarot-backend/internal/app/service/statistics"
	wh "github.com/arcanalabs/tarot-backend/internal/app/service/webhookingest"
	models "github.com/arcanalabs/tarot-backend/internal/models"
	"github.com/arcanalabs/tarot-backend/pkg/response"
)

// Concrete envelope instantiations referenced by swagger annotations.

type RespOK struct {
	Success bool               `json:"success"`
	Data    interface{}        `json:"data"`
	Error   *response.APIError `json:"error,omitempty"`
}

type RespCardList = cardListResponse

type RespCard struct {
	Success bool     `json:"success"`
	Data    CardView `json:"data"`
}

type RespDebitResult struct {
	Success bool                   `json:"success"`
	Data    ledgersvc.DebitResult  `json:"data"`
}

type RespReading struct {
	Success bool           `json:"success"`
	Data    models.Reading `json:"data"`
}

type RespReadingList struct {
	Success bool                                     `json:"success"`
	Data    response.ListResponse[*models.Reading]   `json:"data"`
}

type RespLedgerList struct {
	Success bool                                               `json:"success"`
	Data    response.ListResponse[*models.CreditLedgerEntry]   `json:"data"`
}

type RespBalance struct {
	Success bool        `json:"success"`
	Data    balanceData `json:"data"`
}

type RespIngestResult struct {
	Success bool            `json:"success"`
	Data    wh.IngestResult `json:"data"`
}

type RespReadingScan struct {
	Success bool                            `json:"success"`
	Data    readingsvc.ScanReadingsResponse `json:"data"`
}

type RespLedgerScan struct {
	Success bool                         `json:"success"`
	Data    ledgersvc.ScanEntriesResponse `json:"data"`
}

type RespStatistics struct {
	Success bool                         `json:"success"`
	Data    statistics.StatisticResponse `json:"data"`
}

type RespReconcile struct {
	Success bool            `json:"success"`
	Data    reconcileResult `json:"data"`
}
