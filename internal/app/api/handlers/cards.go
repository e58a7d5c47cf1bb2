package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	cardsvc "github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	"github.com/arcanalabs/tarot-backend/pkg/response"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

// CardView is the localized catalog entry returned by the public API.
type CardView struct {
	ID            int              `json:"id"`
	Name          string           `json:"name"`
	LocalizedName string           `json:"localizedName"`
	Slug          string           `json:"slug"`
	ArcanaType    types.ArcanaType `json:"arcanaType"`
	Suit          types.Suit       `json:"suit,omitempty"`
	Number        int              `json:"number"`
}

func toCardView(locale types.Locale, c *types.Card) CardView {
	return CardView{
		ID:            c.ID,
		Name:          c.Name,
		LocalizedName: c.LocalizedName(locale),
		Slug:          c.Slugs[locale],
		ArcanaType:    c.Arcana,
		Suit:          c.Suit,
		Number:        c.Number,
	}
}

type cardListResponse struct {
	Success    bool                `json:"success"`
	Data       []CardView          `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// @Summary      List cards
// @Description  Returns a localized page of the 78-card catalog.
// @Tags         Cards
// @Produce      json
// @Param        locale      path   string  true   "Locale (tr, en, sr)"
// @Param        arcanaType  query  string  false  "major or minor"
// @Param        suit        query  string  false  "cups, swords, wands or pentacles"
// @Param        limit       query  int     false  "Page size, 1-100"
// @Param        offset      query  int     false  "Page offset"
// @Success      200  {object}  handlers.RespCardList
// @Router       /api/cards/{locale} [get]
func ApiListCards(svc *cardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := cardsvc.Filter{
			ArcanaType: c.Query("arcanaType"),
			Suit:       c.Query("suit"),
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n == 0 {
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeInvalidLimit, "limit must be a positive integer"))
				return
			}
			f.Limit = n
		}
		if v := c.Query("offset"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeInvalidOffset, "offset must be an integer"))
				return
			}
			f.Offset = n
		}

		locale := c.Param("locale")
		page, total, limit, offset, err := svc.List(locale, f)
		if err != nil {
			var verr *cardsvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, response.ErrT[any](verr.Code, verr.Message))
				return
			}
			c.JSON(http.StatusBadRequest, response.ErrT[any](response.CodeValidationError, err.Error()))
			return
		}

		loc := types.Locale(locale)
		c.JSON(http.StatusOK, cardListResponse{
			Success:    true,
			Data:       lo.Map(page, func(card *types.Card, _ int) CardView { return toCardView(loc, card) }),
			Pagination: response.Pagination{Limit: limit, Offset: offset, Total: total},
		})
	}
}

// @Summary      Get card by slug
// @Description  Resolves one card by its locale-specific slug.
// @Tags         Cards
// @Produce      json
// @Param        locale  path  string  true  "Locale (tr, en, sr)"
// @Param        slug    path  string  true  "Card slug in that locale"
// @Success      200  {object}  handlers.RespCard
// @Router       /api/cards/{locale}/{slug} [get]
func ApiGetCardBySlug(svc *cardsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.Param("locale")
		card, err := svc.BySlug(locale, c.Param("slug"))
		if err != nil {
			var verr *cardsvc.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, response.ErrT[any](verr.Code, verr.Message))
				return
			}
			c.JSON(http.StatusNotFound, response.ErrT[any](response.CodeNotFound, "card not found"))
			return
		}
		c.JSON(http.StatusOK, response.OKT(toCardView(types.Locale(locale), card)))
	}
}

func RegisterCardRoutes(r gin.IRouter, svc *cardsvc.Service) {
	r.GET("/api/cards/:locale", ApiListCards(svc))
	r.GET("/api/cards/:locale/:slug", ApiGetCardBySlug(svc))
}
