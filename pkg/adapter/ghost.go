package adapter

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
)

// CMS is the publish boundary. The pipeline's responsibility ends at a
// confirmed create; drafts vs. published is the caller's choice.
type CMS interface {
	CreatePost(ctx context.Context, article model.Article, publish bool, tag string) (*model.Post, error)
	TestConnection(ctx context.Context) error
}

type ghostClient struct {
	apiURL string // e.g. https://example.com/ghost/api/admin/
	keyID  string
	secret []byte
	client *http.Client
}

// NewGhost creates a Ghost Admin API client. adminKey is the "id:secret"
// pair from the Ghost integration settings.
func NewGhost(apiURL, adminKey string) (CMS, error) {
	id, secretHex, ok := strings.Cut(adminKey, ":")
	if !ok || id == "" || secretHex == "" {
		return nil, goerr.New("admin key must be in id:secret form")
	}
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, goerr.Wrap(err, "admin key secret is not hex")
	}

	return &ghostClient{
		apiURL: strings.TrimSuffix(apiURL, "/") + "/",
		keyID:  id,
		secret: secret,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// token mints the short-lived JWT the Admin API expects.
func (g *ghostClient) token() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = g.keyID

	signed, err := t.SignedString(g.secret)
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign admin token")
	}
	return signed, nil
}

type ghostPostPayload struct {
	Posts []ghostPost `json:"posts"`
}

type ghostPost struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	HTML            string     `json:"html,omitempty"`
	Status          string     `json:"status,omitempty"`
	Tags            []ghostTag `json:"tags,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	CustomExcerpt   string     `json:"custom_excerpt,omitempty"`
	URL             string     `json:"url,omitempty"`
}

type ghostTag struct {
	Name string `json:"name"`
}

func (g *ghostClient) CreatePost(ctx context.Context, article model.Article, publish bool, tag string) (*model.Post, error) {
	status := "draft"
	if publish {
		status = "published"
	}

	metaTitle := article.MetaTitle
	if metaTitle == "" {
		metaTitle = article.Title
	}

	payload := ghostPostPayload{Posts: []ghostPost{{
		Title:           article.Title,
		HTML:            article.HTML,
		Status:          status,
		Tags:            []ghostTag{{Name: tag}},
		MetaTitle:       metaTitle,
		MetaDescription: article.MetaDescription,
		CustomExcerpt:   article.Excerpt,
	}}}

	var result ghostPostPayload
	if err := g.do(ctx, http.MethodPost, "posts/?source=html", payload, &result); err != nil {
		return nil, err
	}
	if len(result.Posts) == 0 {
		return nil, goerr.New("CMS returned no post", goerr.V("title", article.Title))
	}

	created := result.Posts[0]
	return &model.Post{
		ID:     created.ID,
		Title:  created.Title,
		Status: created.Status,
		URL:    created.URL,
	}, nil
}

func (g *ghostClient) TestConnection(ctx context.Context) error {
	return g.do(ctx, http.MethodGet, "site/", nil, nil)
}

func (g *ghostClient) do(ctx context.Context, method, path string, body, out any) error {
	token, err := g.token()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.apiURL+path, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build CMS request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Ghost "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "CMS request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("CMS rejected request",
			goerr.V("path", path), goerr.V("status", resp.StatusCode), goerr.V("body", string(raw)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return goerr.Wrap(err, "failed to decode CMS response", goerr.V("path", path))
		}
	}
	return nil
}
