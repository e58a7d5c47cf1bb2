package types

// SpreadType identifies one of the tarot spread mini-apps.
type SpreadType string

const (
	SpreadLove                 SpreadType = "love"
	SpreadCareer               SpreadType = "career"
	SpreadMoney                SpreadType = "money"
	SpreadRelationshipAnalysis SpreadType = "relationship-analysis"
	SpreadRelationshipProblems SpreadType = "relationship-problems"
	SpreadMarriage             SpreadType = "marriage"
	SpreadNewLover             SpreadType = "new-lover"
	SpreadSituationAnalysis    SpreadType = "situation-analysis"
	SpreadProblemSolving       SpreadType = "problem-solving"
)

var SupportedSpreads = []SpreadType{
	SpreadLove,
	SpreadCareer,
	SpreadMoney,
	SpreadRelationshipAnalysis,
	SpreadRelationshipProblems,
	SpreadMarriage,
	SpreadNewLover,
	SpreadSituationAnalysis,
	SpreadProblemSolving,
}

func (s SpreadType) Valid() bool {
	for _, t := range SupportedSpreads {
		if s == t {
			return true
		}
	}
	return false
}

// ReadingStatus is set at creation and only changed by admins afterwards.
type ReadingStatus string

const (
	ReadingStatusCompleted ReadingStatus = "completed"
	ReadingStatusReviewed  ReadingStatus = "reviewed"
	ReadingStatusFlagged   ReadingStatus = "flagged"
)

func (s ReadingStatus) Valid() bool {
	switch s {
	case ReadingStatusCompleted, ReadingStatusReviewed, ReadingStatusFlagged:
		return true
	}
	return false
}

// LedgerReason classifies credit movements.
type LedgerReason string

const (
	LedgerReasonReadingDebit LedgerReason = "reading_debit"
	LedgerReasonPurchase     LedgerReason = "purchase"
	LedgerReasonBonus        LedgerReason = "bonus"
	LedgerReasonAdminAdjust  LedgerReason = "admin_adjust"
)

// DrawnCard is one card position inside a persisted reading.
type DrawnCard struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName"`
	IsReversed    bool   `json:"isReversed"`
}
