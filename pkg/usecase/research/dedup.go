package research

import (
	"regexp"
	"sort"
	"strings"

	"github.com/minekvitteringer/skribent/pkg/model"
)

// Norwegian function words that carry no topical signal. Titles like
// "Slik finner du X" and "Hvordan finne X" must compare equal on X alone.
var stopWords = map[string]bool{
	"slik": true, "hvordan": true, "hva": true, "er": true, "for": true,
	"og": true, "i": true, "på": true, "til": true, "med": true,
	"som": true, "en": true, "et": true, "de": true, "den": true,
	"det": true, "av": true, "har": true, "kan": true, "din": true,
	"dine": true, "du": true, "deg": true,
}

var tokenSplit = regexp.MustCompile(`[\s\-:,]+`)

func keywords(s string) []string {
	var words []string
	for _, w := range tokenSplit.Split(s, -1) {
		if len(w) > 2 && !stopWords[w] {
			words = append(words, w)
		}
	}
	sort.Strings(words)
	return words
}

// Similar reports whether two titles or keywords describe the same topic.
// Exact and substring matches are similar outright; otherwise the
// stop-word-filtered token sets are compared and the pair is similar when
// at least threshold of the smaller set matches the other (equality or
// substring either way). Pure and symmetric.
func Similar(a, b string, threshold float64) bool {
	s1 := strings.ToLower(strings.TrimSpace(a))
	s2 := strings.ToLower(strings.TrimSpace(b))
	if s1 == "" || s2 == "" {
		return false
	}

	if s1 == s2 {
		return true
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return true
	}

	k1 := keywords(s1)
	k2 := keywords(s2)
	if len(k1) == 0 || len(k2) == 0 {
		return false
	}

	// Count matches over the smaller set so the ratio does not depend on
	// argument order. Equal-sized sets are ordered by content for the same
	// reason: a substring can match several tokens in one direction only.
	small, large := k1, k2
	if len(k2) < len(k1) || (len(k2) == len(k1) && strings.Join(k2, " ") < strings.Join(k1, " ")) {
		small, large = k2, k1
	}

	matches := 0
	for _, w1 := range small {
		for _, w2 := range large {
			if w1 == w2 || strings.Contains(w1, w2) || strings.Contains(w2, w1) {
				matches++
				break
			}
		}
	}

	return float64(matches)/float64(len(small)) >= threshold
}

// FilterUnique partitions candidate ideas into accepted and rejected
// against the universe of prior topics. A candidate is rejected on the
// first match: title vs. prior title, primary keyword vs. prior query,
// or title vs. prior topic. Pure: same inputs, same partition.
func FilterUnique(candidates []model.Idea, universe []model.GeneratedTopic, threshold float64) ([]model.Idea, []model.RejectedIdea) {
	var accepted []model.Idea
	var rejected []model.RejectedIdea

	for _, idea := range candidates {
		reject := func() *model.RejectedIdea {
			for _, prev := range universe {
				if Similar(idea.Title, prev.Title, threshold) {
					return &model.RejectedIdea{Title: idea.Title, Reason: model.RejectSimilarTitle, MatchedAgainst: prev.Title}
				}
				if idea.PrimaryKeyword != "" && prev.Query != "" && Similar(idea.PrimaryKeyword, prev.Query, threshold) {
					return &model.RejectedIdea{Title: idea.Title, Reason: model.RejectSimilarKeyword, MatchedAgainst: prev.Query}
				}
				if prev.Topic != "" && Similar(idea.Title, prev.Topic, threshold) {
					return &model.RejectedIdea{Title: idea.Title, Reason: model.RejectSimilarTopic, MatchedAgainst: prev.Topic}
				}
			}
			return nil
		}()

		if reject != nil {
			rejected = append(rejected, *reject)
		} else {
			accepted = append(accepted, idea)
		}
	}

	return accepted, rejected
}
