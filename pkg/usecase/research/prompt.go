package research

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
)

//go:embed prompt/research.md
var researchPromptRaw string

var researchPromptTmpl = template.Must(template.New("research").Parse(researchPromptRaw))

//go:embed prompt/smart.md
var smartPromptRaw string

var smartPromptTmpl = template.Must(template.New("smart").Parse(smartPromptRaw))

//go:embed prompt/category.md
var categoryPromptRaw string

var categoryPromptTmpl = template.Must(template.New("category").Parse(categoryPromptRaw))

// maxAvoidContext bounds how much history is spelled out in the prompt.
const maxAvoidContext = 50

var norwegianMonths = [...]string{
	"januar", "februar", "mars", "april", "mai", "juni",
	"juli", "august", "september", "oktober", "november", "desember",
}

func norwegianMonth(m time.Month) string {
	return norwegianMonths[m-1]
}

type avoidEntry struct {
	Title   string
	Keyword string
}

func (uc *UseCase) buildResearchPrompt(focus string, count int, avoid []model.GeneratedTopic, round int, trendRecords []model.TrendRecord, signals *model.SearchSignals) (string, error) {
	if focus == "" {
		focus = "Generell analyse"
	}

	trendsJSON, err := json.MarshalIndent(trendRecords, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal trends")
	}

	var opportunities []model.Opportunity
	var topPerformers []model.AggregatedQuery
	var themes model.KeywordThemes
	if signals != nil {
		opportunities = signals.Opportunities
		if len(opportunities) > 10 {
			opportunities = opportunities[:10]
		}
		topPerformers = signals.TopPerformers
		themes = signals.Themes
	}

	opportunitiesJSON, err := json.MarshalIndent(opportunities, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal opportunities")
	}
	topPerformersJSON, err := json.MarshalIndent(topPerformers, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal top performers")
	}
	themesJSON, err := json.MarshalIndent(themes, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal themes")
	}

	if len(avoid) > maxAvoidContext {
		avoid = avoid[len(avoid)-maxAvoidContext:]
	}
	avoidList := make([]avoidEntry, 0, len(avoid))
	for _, t := range avoid {
		title := t.Title
		if title == "" {
			title = t.Topic
		}
		keyword := t.Query
		if keyword == "" {
			keyword = "N/A"
		}
		avoidList = append(avoidList, avoidEntry{Title: title, Keyword: keyword})
	}

	now := uc.now()
	var buf bytes.Buffer
	if err := researchPromptTmpl.Execute(&buf, map[string]any{
		"TrendsJSON":        string(trendsJSON),
		"OpportunitiesJSON": string(opportunitiesJSON),
		"TopPerformersJSON": string(topPerformersJSON),
		"ThemesJSON":        string(themesJSON),
		"AvoidList":         avoidList,
		"ManyAvoided":       len(avoid) > 20,
		"Escalated":         round > 1,
		"Round":             round,
		"EscalationStores":  uc.escalationStores(round),
		"Focus":             focus,
		"Date":              fmt.Sprintf("%d. %s %d", now.Day(), norwegianMonth(now.Month()), now.Year()),
		"Month":             norwegianMonth(now.Month()),
		"IdeaCount":         (count*8 + 9) / 10,
		"CreativeCount":     max((count+4)/5, 2),
		"TrendCount":        (count + 2) / 3,
		"GapCount":          (count + 2) / 3,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute research prompt template")
	}

	return buf.String(), nil
}

// escalationStores rotates a different window of the store list into the
// retry instructions each round, so repeated rounds point the model at
// stores it has not tried yet.
func (uc *UseCase) escalationStores(round int) string {
	if len(uc.stores) == 0 {
		return ""
	}

	const window = 20
	offset := ((round - 1) * window) % len(uc.stores)
	names := make([]string, 0, window)
	for i := 0; i < window && i < len(uc.stores); i++ {
		names = append(names, uc.stores[(offset+i)%len(uc.stores)])
	}
	return strings.Join(names, ", ")
}

func (uc *UseCase) buildSmartPrompt(count int, brain *model.AgentBrain) (string, error) {
	context := map[string]any{
		"recentTrends":   capSlice(brain.TrendingTopics, 5),
		"recentInsights": tailSlice(brain.Insights, 2),
		"existingIdeas":  capSlice(brain.SuggestedTopics, 3),
	}
	contextJSON, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal brain context")
	}

	now := uc.now()
	var buf bytes.Buffer
	if err := smartPromptTmpl.Execute(&buf, map[string]any{
		"BrainContextJSON": string(contextJSON),
		"Date":             fmt.Sprintf("%d. %s %d", now.Day(), norwegianMonth(now.Month()), now.Year()),
		"Count":            count,
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute smart prompt template")
	}

	return buf.String(), nil
}

// categoryFocus maps product categories to their research focus text.
var categoryFocus = map[string]string{
	"phones":        "mobiltelefoner, iPhone, Samsung Galaxy, Pixel, OnePlus, Xiaomi - nye modeller, garantivilkår, populære modeller i Norge",
	"tvs":           "TV-er, OLED, QLED, Samsung, LG, Sony - nye modeller, størrelse-trender, smart-TV-funksjoner, garantier",
	"laptops":       "laptops, MacBook, gaming-laptops, business-laptops, Lenovo, HP, ASUS - aktuelle trender",
	"appliances":    "hvitevarer, vaskemaskiner, kjøleskap, oppvaskmaskin, tørketrommel - energimerking, garantier, populære merker",
	"gaming":        "gaming, PlayStation, Xbox, Nintendo Switch, gaming-PC, tilbehør - nye lanseringer, tilbud",
	"wearables":     "smartklokker, Apple Watch, Samsung Galaxy Watch, Garmin, fitness-trackere - helsefunksjoner, garanti",
	"audio":         "hodetelefoner, AirPods, Sony, Bose, soundbars, høyttalere - trådløs lyd-trender",
	"homeAndGarden": "møbler, IKEA, Skeidar, hagemaskiner, verktøy, robotgressklippere - sesongtrender",
}

func (uc *UseCase) buildCategoryPrompt(category string) (string, error) {
	focus, ok := categoryFocus[category]
	if !ok {
		focus = category
	}

	var buf bytes.Buffer
	if err := categoryPromptTmpl.Execute(&buf, map[string]any{
		"Category": category,
		"Focus":    focus,
		"Year":     uc.now().Year(),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute category prompt template")
	}

	return buf.String(), nil
}

func capSlice[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func tailSlice[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
