package trends

import "github.com/minekvitteringer/skribent/pkg/model"

// defaultTrends is the last-resort trend set: evergreen receipt and
// warranty searches for the Norwegian market.
func defaultTrends() []model.TrendRecord {
	titles := []string{
		"kvittering",
		"garanti mobil",
		"reklamasjon",
		"forbrukerrettigheter",
		"digital kvittering",
		"iphone garanti",
		"samsung garanti",
		"elkjøp",
		"power elektronikk",
		"clas ohlson",
	}

	records := make([]model.TrendRecord, 0, len(titles))
	for _, title := range titles {
		records = append(records, model.TrendRecord{
			Title:   title,
			Traffic: "Evergreen",
			Source:  model.TrendOriginFallback,
		})
	}
	return records
}
