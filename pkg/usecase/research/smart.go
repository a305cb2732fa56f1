package research

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/adapter"
	"github.com/minekvitteringer/skribent/pkg/model"
	"google.golang.org/genai"
)

// GenerateSmartTopics proposes article ideas from the brain's accumulated
// knowledge alone, without fetching fresh data. The new ideas go to the
// front of the brain's suggestion list.
func (uc *UseCase) GenerateSmartTopics(ctx context.Context, count int) ([]model.Idea, error) {
	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load brain")
	}

	prompt, err := uc.buildSmartPrompt(count, brain)
	if err != nil {
		return nil, err
	}

	resp, err := uc.gemini.GenerateContent(ctx,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, goerr.Wrap(err, "smart topic call failed")
	}

	text, err := adapter.ResponseText(resp)
	if err != nil {
		return nil, err
	}

	body, err := extractObject(text)
	if err != nil {
		return nil, &ParseError{Stage: "extract", Err: err, Snippet: snippet(text)}
	}
	var parsed struct {
		Topics []model.Idea `json:"topics"`
	}
	if err := json.Unmarshal([]byte(cleanupJSON(body)), &parsed); err != nil {
		return nil, &ParseError{Stage: "repair", Err: err, Snippet: snippet(text)}
	}

	brain.PrependSuggestions(parsed.Topics)
	if err := uc.repo.SaveBrain(ctx, brain); err != nil {
		return nil, goerr.Wrap(err, "failed to save brain")
	}

	return parsed.Topics, nil
}

// CategoryResearch is the model's read on one product category's market.
type CategoryResearch struct {
	Category       string               `json:"category"`
	TopProducts    []model.ProductTrend `json:"topProducts"`
	WarrantyIssues []string             `json:"warrantyIssues"`
	ArticleIdeas   []model.Idea         `json:"articleIdeas"`
	MarketInsights string               `json:"marketInsights"`
}

// ResearchCategory researches one product category and remembers the
// result in the brain's product-category map.
func (uc *UseCase) ResearchCategory(ctx context.Context, category string) (*CategoryResearch, error) {
	prompt, err := uc.buildCategoryPrompt(category)
	if err != nil {
		return nil, err
	}

	resp, err := uc.gemini.GenerateContent(ctx,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, goerr.Wrap(err, "category research call failed", goerr.V("category", category))
	}

	text, err := adapter.ResponseText(resp)
	if err != nil {
		return nil, err
	}

	body, err := extractObject(text)
	if err != nil {
		return nil, &ParseError{Stage: "extract", Err: err, Snippet: snippet(text)}
	}
	var result CategoryResearch
	if err := json.Unmarshal([]byte(cleanupJSON(body)), &result); err != nil {
		return nil, &ParseError{Stage: "repair", Err: err, Snippet: snippet(text)}
	}

	brain, err := uc.repo.LoadBrain(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load brain")
	}
	now := uc.now()
	if brain.ProductCategories == nil {
		brain.ProductCategories = map[string]model.ProductCategory{}
	}
	brain.ProductCategories[category] = model.ProductCategory{
		LastUpdated: &now,
		Trends:      result.TopProducts,
		Insights:    result.MarketInsights,
		Ideas:       result.ArticleIdeas,
	}
	if err := uc.repo.SaveBrain(ctx, brain); err != nil {
		return nil, goerr.Wrap(err, "failed to save brain")
	}

	return &result, nil
}
