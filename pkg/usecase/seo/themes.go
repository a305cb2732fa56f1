package seo

import (
	"strings"

	"github.com/minekvitteringer/skribent/pkg/model"
)

const maxThemeHits = 10

// Theme term lists for the receipt domain. Stores come from the catalog
// config instead, since the store list changes with the market.
var (
	productTerms  = []string{"mobil", "telefon", "tv", "laptop", "pc", "vaskemaskin", "kjøleskap", "iphone", "samsung", "macbook"}
	problemTerms  = []string{"finner ikke", "mistet", "bleknet", "funker ikke", "uten kvittering", "reklamasjon"}
	warrantyTerms = []string{"garanti", "reklamasjon", "retur", "bytte"}
	businessTerms = []string{"enkeltpersonforetak", "enk", "mva", "fradrag", "regnskap", "firma"}
)

// Themes buckets the aggregated queries by recurring domain themes. Each
// store appears at most once; the other buckets record every matching
// query but only the first matching term per query. Buckets are capped
// at ten hits.
func (uc *UseCase) Themes(queries []model.AggregatedQuery) model.KeywordThemes {
	var themes model.KeywordThemes
	seenStores := map[string]bool{}

	for _, q := range queries {
		query := strings.ToLower(q.Query)

		for _, store := range uc.stores {
			term := strings.ToLower(store)
			if strings.Contains(query, term) && !seenStores[term] {
				seenStores[term] = true
				themes.Stores = append(themes.Stores, model.ThemeHit{
					Term: term, Query: q.Query, Impressions: q.Impressions,
				})
			}
		}

		themes.Products = appendHit(themes.Products, query, q, productTerms)
		themes.Problems = appendHit(themes.Problems, query, q, problemTerms)
		themes.Warranties = appendHit(themes.Warranties, query, q, warrantyTerms)
		themes.Business = appendHit(themes.Business, query, q, businessTerms)
	}

	themes.Stores = capHits(themes.Stores)
	themes.Products = capHits(themes.Products)
	themes.Problems = capHits(themes.Problems)
	themes.Warranties = capHits(themes.Warranties)
	themes.Business = capHits(themes.Business)

	return themes
}

func appendHit(hits []model.ThemeHit, query string, q model.AggregatedQuery, terms []string) []model.ThemeHit {
	for _, term := range terms {
		if strings.Contains(query, term) {
			return append(hits, model.ThemeHit{Term: term, Query: q.Query, Impressions: q.Impressions})
		}
	}
	return hits
}

func capHits(hits []model.ThemeHit) []model.ThemeHit {
	if len(hits) > maxThemeHits {
		return hits[:maxThemeHits]
	}
	return hits
}
