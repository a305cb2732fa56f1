package model

// TrendingInsight is one model-identified trending topic with its link
// back to the service's domain.
type TrendingInsight struct {
	Topic         string   `json:"topic"`
	Source        string   `json:"source,omitempty"`
	Relevance     string   `json:"relevance,omitempty"`
	RisingQueries []string `json:"risingQueries,omitempty"`
}

// GapSuggestion is a model-proposed article for a search-performance gap.
type GapSuggestion struct {
	Keyword         string `json:"keyword"`
	Impressions     int    `json:"impressions,omitempty"`
	CurrentPosition int    `json:"currentPosition,omitempty"`
	SuggestedTitle  string `json:"suggestedTitle,omitempty"`
	Opportunity     string `json:"opportunity,omitempty"`
}

// CreativeIdea is a free-form idea the model proposed on its own, before
// it is normalized into an Idea.
type CreativeIdea struct {
	Title          string `json:"title"`
	PrimaryKeyword string `json:"primaryKeyword,omitempty"`
	Angle          string `json:"angle,omitempty"`
	WhyThisWorks   string `json:"whyThisWorks,omitempty"`
}

type SeasonalInsights struct {
	CurrentMonth   string   `json:"currentMonth,omitempty"`
	Opportunities  []string `json:"opportunities,omitempty"`
	UpcomingEvents []string `json:"upcomingEvents,omitempty"`
}

type DataInsights struct {
	TopPerformingThemes []string `json:"topPerformingThemes,omitempty"`
	EmergingTopics      []string `json:"emergingTopics,omitempty"`
	Recommendations     []string `json:"recommendations,omitempty"`
}

// ResearchResult is the structured output of one research round.
type ResearchResult struct {
	ArticleIdeas     []Idea            `json:"articleIdeas"`
	TrendingTopics   []TrendingInsight `json:"trendingTopics,omitempty"`
	SEOGaps          []GapSuggestion   `json:"seoGaps,omitempty"`
	AICreativeIdeas  []CreativeIdea    `json:"aiCreativeIdeas,omitempty"`
	SeasonalInsights SeasonalInsights  `json:"seasonalInsights,omitempty"`
	DataInsights     DataInsights      `json:"dataInsights,omitempty"`
}

// MergeCreativeIdeas folds the free-form creative ideas into the article
// idea list with the ai-creative category, as the drafting pipeline only
// consumes Ideas.
func (r *ResearchResult) MergeCreativeIdeas() {
	for _, c := range r.AICreativeIdeas {
		rationale := c.WhyThisWorks
		if rationale == "" {
			rationale = c.Angle
		}
		keywords := []string{}
		if c.PrimaryKeyword != "" {
			keywords = append(keywords, c.PrimaryKeyword)
		}
		r.ArticleIdeas = append(r.ArticleIdeas, Idea{
			Title:          c.Title,
			PrimaryKeyword: c.PrimaryKeyword,
			Keywords:       keywords,
			Category:       CategoryAICreative,
			Priority:       PriorityMedium,
			DataSource:     "ai-creative",
			Rationale:      rationale,
		})
	}
}

// SignalBundle is the raw data gathered before an idea-generation call.
type SignalBundle struct {
	Trends        []TrendRecord  `json:"trends,omitempty"`
	SearchConsole *SearchSignals `json:"searchConsole,omitempty"`
}

// SearchSignals summarizes search-performance data for prompting.
type SearchSignals struct {
	Opportunities    []Opportunity     `json:"opportunities,omitempty"`
	TopPerformers    []AggregatedQuery `json:"topPerformers,omitempty"`
	Themes           KeywordThemes     `json:"themes,omitempty"`
	TotalQueries     int               `json:"totalQueries"`
	TotalClicks      int               `json:"totalClicks"`
	TotalImpressions int               `json:"totalImpressions"`
}

// KeywordThemes buckets the site's queries by recurring domain themes.
type KeywordThemes struct {
	Stores     []ThemeHit `json:"stores,omitempty"`
	Products   []ThemeHit `json:"products,omitempty"`
	Problems   []ThemeHit `json:"problems,omitempty"`
	Warranties []ThemeHit `json:"warranties,omitempty"`
	Business   []ThemeHit `json:"business,omitempty"`
}

// ThemeHit is one query matched to a theme keyword.
type ThemeHit struct {
	Term        string `json:"term"`
	Query       string `json:"query"`
	Impressions int    `json:"impressions"`
}
