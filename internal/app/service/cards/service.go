package cards

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/arcanalabs/tarot-backend/pkg/response"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

const (
	DefaultLimit = 78
	MaxLimit     = 100
)

// ValidationError pairs a wire error code with a message; the handler maps
// it straight onto the HTTP 400 envelope.
type ValidationError struct {
	Code    response.ErrorCode
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var ErrCardNotFound = errors.New("card not found")

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	ArcanaType string
	Suit       string
	Limit      int
	Offset     int
}

// Service serves the fixed 78-card catalog.
type Service struct {
	deck   []*types.Card
	bySlug map[types.Locale]map[string]*types.Card
}

func NewService() *Service {
	deck := buildDeck()
	bySlug := make(map[types.Locale]map[string]*types.Card, len(types.SupportedLocales))
	for _, locale := range types.SupportedLocales {
		bySlug[locale] = make(map[string]*types.Card, len(deck))
	}
	for _, card := range deck {
		for locale, slug := range card.Slugs {
			bySlug[locale][slug] = card
		}
	}
	return &Service{deck: deck, bySlug: bySlug}
}

// List returns one page of the catalog for a locale plus the filtered total.
func (s *Service) List(locale string, f Filter) ([]*types.Card, int64, int, int, error) {
	loc := types.Locale(locale)
	if !loc.Valid() {
		return nil, 0, 0, 0, &ValidationError{response.CodeInvalidLocale, fmt.Sprintf("unsupported locale: %s", locale)}
	}
	if f.ArcanaType != "" && !types.ArcanaType(f.ArcanaType).Valid() {
		return nil, 0, 0, 0, &ValidationError{response.CodeInvalidArcanaType, fmt.Sprintf("unsupported arcana type: %s", f.ArcanaType)}
	}
	if f.Suit != "" && !types.Suit(f.Suit).Valid() {
		return nil, 0, 0, 0, &ValidationError{response.CodeInvalidSuit, fmt.Sprintf("unsupported suit: %s", f.Suit)}
	}
	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, 0, 0, 0, &ValidationError{response.CodeInvalidLimit, fmt.Sprintf("limit must be in [1,%d]", MaxLimit)}
	}
	if f.Offset < 0 {
		return nil, 0, 0, 0, &ValidationError{response.CodeInvalidOffset, "offset must be >= 0"}
	}

	matched := lo.Filter(s.deck, func(c *types.Card, _ int) bool {
		if f.ArcanaType != "" && c.Arcana != types.ArcanaType(f.ArcanaType) {
			return false
		}
		if f.Suit != "" && c.Suit != types.Suit(f.Suit) {
			return false
		}
		return true
	})

	total := int64(len(matched))
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, limit, f.Offset, nil
}

// BySlug resolves a card by its locale-specific slug.
func (s *Service) BySlug(locale, slug string) (*types.Card, error) {
	loc := types.Locale(locale)
	if !loc.Valid() {
		return nil, &ValidationError{response.CodeInvalidLocale, fmt.Sprintf("unsupported locale: %s", locale)}
	}
	if card, ok := s.bySlug[loc][slug]; ok {
		return card, nil
	}
	return nil, ErrCardNotFound
}

// ByID returns the card with the given catalog id.
func (s *Service) ByID(id int) (*types.Card, error) {
	if id < 0 || id >= len(s.deck) {
		return nil, ErrCardNotFound
	}
	return s.deck[id], nil
}

// Deck returns the whole catalog in canonical order.
func (s *Service) Deck() []*types.Card { return s.deck }

var Module = fx.Options(
	fx.Provide(NewService),
)
