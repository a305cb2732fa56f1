package writer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
)

var (
	jsonObjectRe  = regexp.MustCompile(`(?s)\{.*\}`)
	codeFenceRe   = regexp.MustCompile("```html?\n?|```\n?")
	h1Re          = regexp.MustCompile(`(?is)<h1[^>]*>.*?</h1>`)
	emptyParaRe   = regexp.MustCompile(`<p>\s*</p>`)
	paraHeadRe    = regexp.MustCompile(`<p>\s*<h`)
	headParaRe    = regexp.MustCompile(`</h(\d)>\s*</p>`)
	multiSpaceRe  = regexp.MustCompile(`  +`)
	listRunRe     = regexp.MustCompile(`(<li>.*?</li>)+`)
	headingMarkRe = regexp.MustCompile(`^#+\s*`)
)

// ParseArticle extracts an article from the model's response. The happy
// path is the JSON object the prompt asks for; a plain-text answer is
// salvaged by treating the first line as the title and converting light
// markdown to HTML.
func ParseArticle(text string) (*model.Article, error) {
	if raw := jsonObjectRe.FindString(text); raw != "" {
		var article model.Article
		if err := json.Unmarshal([]byte(raw), &article); err == nil {
			if article.Title == "" || article.HTML == "" {
				return nil, goerr.New("article response missing title or html")
			}
			article.HTML = cleanHTML(article.HTML)
			return &article, nil
		}
	}

	article, err := articleFromText(text)
	if err != nil {
		return nil, goerr.Wrap(err, "could not parse article from response")
	}
	return article, nil
}

// cleanHTML normalizes the model's HTML. The CMS renders the title as H1
// itself, so any H1 in the body is stripped.
func cleanHTML(html string) string {
	html = codeFenceRe.ReplaceAllString(html, "")
	html = h1Re.ReplaceAllString(html, "")

	if !strings.HasPrefix(strings.TrimLeft(html, " \n\t"), "<") {
		html = "<p>" + strings.ReplaceAll(html, "\n\n", "</p><p>") + "</p>"
	}

	html = strings.ReplaceAll(html, "\n", " ")
	html = multiSpaceRe.ReplaceAllString(html, " ")
	html = emptyParaRe.ReplaceAllString(html, "")
	html = paraHeadRe.ReplaceAllString(html, "<h")
	html = headParaRe.ReplaceAllString(html, "</h$1>")

	return strings.TrimSpace(html)
}

func articleFromText(text string) (*model.Article, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return nil, goerr.New("response too short to salvage an article")
	}

	title := headingMarkRe.ReplaceAllString(lines[0], "")
	title = strings.TrimSpace(strings.ReplaceAll(title, "**", ""))

	var sb strings.Builder
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "## "):
			sb.WriteString("<h2>" + strings.TrimPrefix(line, "## ") + "</h2>")
		case strings.HasPrefix(line, "### "):
			sb.WriteString("<h3>" + strings.TrimPrefix(line, "### ") + "</h3>")
		case strings.HasPrefix(line, "- "):
			sb.WriteString("<li>" + strings.TrimPrefix(line, "- ") + "</li>")
		default:
			sb.WriteString("<p>" + line + "</p>")
		}
	}
	html := listRunRe.ReplaceAllString(sb.String(), "<ul>$0</ul>")

	return &model.Article{
		Title:           title,
		MetaTitle:       truncate(title, 60),
		MetaDescription: truncate(lines[1], 155),
		Excerpt:         lines[1],
		HTML:            html,
	}, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
