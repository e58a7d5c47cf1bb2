package handlers

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	cardsvc "github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	"github.com/arcanalabs/tarot-backend/pkg/config"
)

func TestApiSitemap_EnumeratesAllPages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{SiteURL: "https://busbuskimki.com/"}
	RegisterSitemapRoutes(r, cardsvc.NewService(), cfg)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	require.True(t, strings.HasPrefix(w.Body.String(), xml.Header))

	var set struct {
		URLs []struct {
			Loc      string  `xml:"loc"`
			Priority float64 `xml:"priority"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))

	// 3 locales x (1 home + 9 spreads + 78 cards)
	require.Len(t, set.URLs, 3*(1+9+78))

	locs := make(map[string]float64, len(set.URLs))
	for _, u := range set.URLs {
		require.True(t, strings.HasPrefix(u.Loc, "https://busbuskimki.com/"), u.Loc)
		locs[u.Loc] = u.Priority
	}
	require.EqualValues(t, 1.0, locs["https://busbuskimki.com/tr"])
	require.EqualValues(t, 0.8, locs["https://busbuskimki.com/en/spreads/love"])
	require.EqualValues(t, 0.6, locs["https://busbuskimki.com/tr/cards/deli"])
	require.EqualValues(t, 0.6, locs["https://busbuskimki.com/sr/cards/luda"])
	require.EqualValues(t, 0.6, locs["https://busbuskimki.com/en/cards/the-fool"])
}
