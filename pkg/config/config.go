package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
	"gopkg.in/yaml.v3"
)

// Config holds the domain catalog and pipeline tunables. Everything has a
// working default so the binary runs without a config file; a YAML file
// overrides the pieces it names.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Feeds    []FeedConfig   `yaml:"feeds"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Research ResearchConfig `yaml:"research"`
	Writer   WriterConfig   `yaml:"writer"`
}

type SiteConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Tag  string `yaml:"tag"`
}

// FeedConfig is one trend feed endpoint.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// CatalogConfig is the rotation material: categories in rotation order,
// the store list, per-category topic lists and the seasonal calendar.
type CatalogConfig struct {
	Categories  []model.Category            `yaml:"categories"`
	Stores      []string                    `yaml:"stores"`
	StoreAngles []string                    `yaml:"storeAngles"` // %s is replaced with the store name
	Topics      map[model.Category][]string `yaml:"topics"`
	Seasonal    []SeasonalTopic             `yaml:"seasonal"`
}

type SeasonalTopic struct {
	Month time.Month `yaml:"month"`
	Topic string     `yaml:"topic"`
}

// ResearchConfig carries the tunable constants of the research pipeline.
// The similarity threshold and half-life come from observed behavior, not
// derivation; only their monotonicity matters for correctness.
type ResearchConfig struct {
	HalfLifeDays        float64 `yaml:"halfLifeDays"`
	WeightFloor         float64 `yaml:"weightFloor"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	MinImpressions      int     `yaml:"minImpressions"`
	MaxCTR              float64 `yaml:"maxCtr"`
	MaxClicks           int     `yaml:"maxClicks"`
	MaxAttempts         int     `yaml:"maxAttempts"`
	MinRequestCount     int     `yaml:"minRequestCount"`
	MinSnapshotSize     int     `yaml:"minSnapshotSize"`
	FallbackDays        int     `yaml:"fallbackDays"`
}

// WriterConfig controls the article drafting loop.
type WriterConfig struct {
	PacingDelay time.Duration `yaml:"pacingDelay"`
}

// Load reads the YAML file at path when it exists and merges it over the
// defaults. An empty path returns the defaults directly.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if len(c.Catalog.Categories) == 0 {
		c.Catalog.Categories = def.Catalog.Categories
	}
	if len(c.Catalog.Stores) == 0 {
		c.Catalog.Stores = def.Catalog.Stores
	}
	if len(c.Catalog.StoreAngles) == 0 {
		c.Catalog.StoreAngles = def.Catalog.StoreAngles
	}
	if len(c.Catalog.Topics) == 0 {
		c.Catalog.Topics = def.Catalog.Topics
	}
	if len(c.Catalog.Seasonal) == 0 {
		c.Catalog.Seasonal = def.Catalog.Seasonal
	}
	if len(c.Feeds) == 0 {
		c.Feeds = def.Feeds
	}
	if c.Site.Name == "" {
		c.Site = def.Site
	}
	r := &c.Research
	dr := def.Research
	if r.HalfLifeDays <= 0 {
		r.HalfLifeDays = dr.HalfLifeDays
	}
	if r.WeightFloor <= 0 {
		r.WeightFloor = dr.WeightFloor
	}
	if r.SimilarityThreshold <= 0 {
		r.SimilarityThreshold = dr.SimilarityThreshold
	}
	if r.MinImpressions <= 0 {
		r.MinImpressions = dr.MinImpressions
	}
	if r.MaxCTR <= 0 {
		r.MaxCTR = dr.MaxCTR
	}
	if r.MaxClicks <= 0 {
		r.MaxClicks = dr.MaxClicks
	}
	if r.MaxAttempts <= 0 {
		r.MaxAttempts = dr.MaxAttempts
	}
	if r.MinRequestCount <= 0 {
		r.MinRequestCount = dr.MinRequestCount
	}
	if r.MinSnapshotSize <= 0 {
		r.MinSnapshotSize = dr.MinSnapshotSize
	}
	if r.FallbackDays <= 0 {
		r.FallbackDays = dr.FallbackDays
	}
	if c.Writer.PacingDelay <= 0 {
		c.Writer.PacingDelay = def.Writer.PacingDelay
	}
}

// Default returns the built-in catalog and tunables.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name: "Mine Kvitteringer",
			URL:  "https://minekvitteringer.no",
			Tag:  "Artikler",
		},
		Feeds: []FeedConfig{
			{Name: "google-trends-no", URL: "https://trends.google.com/trending/rss?geo=NO"},
		},
		Catalog: CatalogConfig{
			Categories: []model.Category{
				model.CategoryTrending,
				model.CategorySEOGap,
				model.CategoryStoreGuide,
				model.CategoryBusiness,
				model.CategoryProblemSolving,
				model.CategoryLifeSituation,
				model.CategoryFeatureHighlight,
				model.CategorySeasonal,
				model.CategoryAICreative,
			},
			Stores: []string{
				"Elkjøp", "Power", "Komplett", "NetOnNet", "Kjell & Company", "Expert",
				"Clas Ohlson", "Jula", "Biltema", "Europris", "Nille", "Normal",
				"XXL", "Sport 1", "Intersport", "Stadium",
				"IKEA", "Skeidar", "Bohus", "Jysk", "Kid Interiør",
				"Byggmax", "Maxbo", "Montér", "Plantasjen", "Hageland",
				"Zalando", "Boozt", "H&M", "Cubus", "Dressmann", "Lindex", "Stormberg",
				"Rema 1000", "Kiwi", "Meny", "Spar", "Coop Extra", "Bunnpris",
				"Apotek 1", "Boots Apotek", "Vitusapotek",
				"Barnas Hus", "Jollyroom", "Lekekassen",
				"Ark", "Norli", "Panduro",
				"Specsavers", "Brilleland", "Synsam",
				"Telenor", "Telia", "Ice",
				"Jernia", "Teknikmagasinet", "Kitchn", "Tilbords",
			},
			StoreAngles: []string{
				"Slik finner du kvitteringer fra %s",
				"%s Min Side funker ikke? Her er løsningen",
				"Alt om garanti og retur hos %s",
				"%s kvitteringer rett til minekvitteringer.no",
			},
			Topics: map[model.Category][]string{
				model.CategoryBusiness: {
					"Kvitteringer for enkeltpersonforetak - komplett guide",
					"MVA-dokumentasjon: Hvilke kvitteringer trenger du?",
					"Firmabil og kjøregodtgjørelse - slik dokumenterer du riktig",
					"Hjemmekontor fradrag - kvitteringene du må ha",
					"Regnskapsfører krever kvitteringer - lever alt på sekunder",
					"Selvstendig næringsdrivende: Spar timer på kvitteringshåndtering",
					"Reiseutgifter i ENK - dokumentasjonskrav",
					"Skattefradrag enkeltpersonforetak - dette kan du trekke fra",
					"Oppbevaringsplikt for regnskap - hvor lenge må du lagre?",
				},
				model.CategoryProblemSolving: {
					"Mistet kvittering - hva gjør du nå?",
					"Kvitteringen har bleknet - er den fortsatt gyldig?",
					"Reklamasjon uten kvittering - dine rettigheter",
					"5 butikker, 5 innlogginger - slutt å lete etter kvitteringer",
					"Butikken la ned - hvor er kvitteringene mine?",
					"E-poster slettes, papir blekner - sikker lagring av kvitteringer",
					"Nettbutikken gikk konkurs - kvitteringene dine er borte. Med mindre...",
				},
				model.CategoryLifeSituation: {
					"Flytte sammen? Del kvitteringer for felles kjøp",
					"Forsikringsskade: Finn alle kvitteringer på 30 sekunder",
					"Arveoppgjør: Dokumenter verdier med kvitteringer",
					"Flytting til ny bolig - kvitteringer du trenger for innboforsikring",
					"Bryllup og store kjøp - hold orden på garantier",
					"Studenter: Slik holder du orden på kvitteringer fra dag én",
					"Boligkjøp: Dokumenter alt fra første visning",
				},
				model.CategoryFeatureHighlight: {
					"Vipps-innlogging: Aldri husk passord igjen",
					"Del kvitteringer med familie - slik fungerer det",
					"Søk i alle kvitteringer med ett klikk",
					"Videresend kvitteringer på e-post - automatisk lagring",
					"OCR-skanning: Aldri skriv inn data manuelt igjen",
					"Smart kategorisering - finn det du leter etter",
					"Sikker skylagring - dine data er trygge",
					"Eksporter kvitteringer til regnskapet",
				},
			},
			Seasonal: []SeasonalTopic{
				{Month: time.January, Topic: "Nyttårsforsetter: Få orden på kvitteringene i år"},
				{Month: time.February, Topic: "Vinterferie-kjøp: Ski, klær og elektronikk - husk kvitteringene"},
				{Month: time.March, Topic: "Skattemeldingen: Kvitteringene du trenger fra i fjor"},
				{Month: time.April, Topic: "Påskesalg: Slik sikrer du kvitteringene"},
				{Month: time.May, Topic: "17. mai-forberedelser: Bunad og festklær - garanti og kvittering"},
				{Month: time.June, Topic: "Sommersalg: Handle smart, lagre kvitteringer"},
				{Month: time.July, Topic: "Ferie-shopping: Kvitteringer fra utlandet"},
				{Month: time.August, Topic: "Skolestart: Alt du handler - én app for kvitteringene"},
				{Month: time.September, Topic: "Høstoppussing: Kvitteringer for byggevarer og møbler"},
				{Month: time.October, Topic: "Høstsalg og elektronikk - Black Week nærmer seg"},
				{Month: time.November, Topic: "Black Friday: Slik holder du orden på alle kvitteringene"},
				{Month: time.December, Topic: "Julegaver: Garanti og bytterett - behold kvitteringene"},
			},
		},
		Research: ResearchConfig{
			HalfLifeDays:        14,
			WeightFloor:         0.1,
			SimilarityThreshold: 0.6,
			MinImpressions:      30,
			MaxCTR:              3,
			MaxClicks:           5,
			MaxAttempts:         5,
			MinRequestCount:     15,
			MinSnapshotSize:     10,
			FallbackDays:        7,
		},
		Writer: WriterConfig{
			PacingDelay: 2 * time.Second,
		},
	}
}
