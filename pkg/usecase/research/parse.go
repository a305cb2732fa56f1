package research

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/minekvitteringer/skribent/pkg/model"
)

// ParseError reports which repair stage gave up on the model output. It
// never fabricates fields: a result either parsed or the attempt failed.
type ParseError struct {
	Stage   string
	Err     error
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse research response at stage %q: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	codeFenceRe     = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	lineCommentRe   = regexp.MustCompile(`(?m)//.*$`)
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	ideasArrayRe    = regexp.MustCompile(`(?s)"articleIdeas"\s*:\s*\[(.*?)\](?:\s*[,}])`)
)

// ParseResearchResult parses the idea-generation output in three stages:
// strict parse of the JSON object, cleanup (code fences, trailing commas,
// comments) and reparse, and finally extraction of just the articleIdeas
// array. Each stage only runs when the previous one failed.
func ParseResearchResult(raw string) (*model.ResearchResult, error) {
	body, err := extractObject(raw)
	if err != nil {
		return nil, &ParseError{Stage: "extract", Err: err, Snippet: snippet(raw)}
	}

	var result model.ResearchResult
	if err := json.Unmarshal([]byte(body), &result); err == nil {
		return &result, nil
	}

	cleaned := cleanupJSON(body)
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return &result, nil
	}

	ideas, err := extractIdeas(cleaned)
	if err != nil {
		return nil, &ParseError{Stage: "repair", Err: err, Snippet: snippet(raw)}
	}
	return &model.ResearchResult{ArticleIdeas: ideas}, nil
}

// extractObject isolates the JSON object from the response text, peeling
// a markdown code fence off when present.
func extractObject(raw string) (string, error) {
	if m := codeFenceRe.FindStringSubmatch(raw); m != nil {
		return m[1], nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return raw[start : end+1], nil
}

func cleanupJSON(s string) string {
	s = lineCommentRe.ReplaceAllString(s, "")
	s = blockCommentRe.ReplaceAllString(s, "")
	// Two passes for commas exposed by the first pass in nested structures.
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return s
}

// extractIdeas is the last resort: pull the articleIdeas array out of an
// otherwise broken object and parse it alone.
func extractIdeas(s string) ([]model.Idea, error) {
	m := ideasArrayRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("no articleIdeas array found")
	}

	body := trailingCommaRe.ReplaceAllString(m[1], "$1")
	var ideas []model.Idea
	if err := json.Unmarshal([]byte("["+body+"]"), &ideas); err != nil {
		return nil, fmt.Errorf("articleIdeas array does not parse: %w", err)
	}
	return ideas, nil
}

func snippet(s string) string {
	if len(s) > 500 {
		return s[:500]
	}
	return s
}
