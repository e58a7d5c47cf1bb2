package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cardsvc "github.com/arcanalabs/tarot-backend/internal/app/service/cards"
	"github.com/arcanalabs/tarot-backend/pkg/config"
	types "github.com/arcanalabs/tarot-backend/pkg/types"
)

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// @Summary      Sitemap
// @Description  Statically enumerated sitemap: locale home pages, spread pages and every card page in every locale.
// @Tags         SEO
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func ApiSitemap(cards *cardsvc.Service, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := strings.TrimRight(cfg.SiteURL, "/")
		set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

		for _, locale := range types.SupportedLocales {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        fmt.Sprintf("%s/%s", base, locale),
				ChangeFreq: "weekly",
				Priority:   1.0,
			})
			for _, spread := range types.SupportedSpreads {
				set.URLs = append(set.URLs, sitemapURL{
					Loc:        fmt.Sprintf("%s/%s/spreads/%s", base, locale, spread),
					ChangeFreq: "monthly",
					Priority:   0.8,
				})
			}
			for _, card := range cards.Deck() {
				set.URLs = append(set.URLs, sitemapURL{
					Loc:        fmt.Sprintf("%s/%s/cards/%s", base, locale, card.Slugs[locale]),
					ChangeFreq: "monthly",
					Priority:   0.6,
				})
			}
		}

		out, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
	}
}

func RegisterSitemapRoutes(r gin.IRouter, cards *cardsvc.Service, cfg *config.Config) {
	r.GET("/sitemap.xml", ApiSitemap(cards, cfg))
}
