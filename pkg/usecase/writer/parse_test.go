package writer_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/minekvitteringer/skribent/pkg/usecase/writer"
)

func TestParseArticleStrictJSON(t *testing.T) {
	raw := `{
		"title": "Slik finner du kvitteringer fra Elkjøp",
		"metaTitle": "Elkjøp kvitteringer - komplett guide",
		"metaDescription": "Finn kvitteringene dine fra Elkjøp på sekunder.",
		"excerpt": "En guide til Elkjøp-kvitteringer.",
		"html": "<p>Ingress her.</p><h2>Slik gjør du det</h2><p>Innhold.</p>"
	}`

	article := gt.R1(writer.ParseArticle(raw)).NoError(t)
	gt.V(t, article.Title).Equal("Slik finner du kvitteringer fra Elkjøp")
	gt.V(t, article.HTML).Equal("<p>Ingress her.</p><h2>Slik gjør du det</h2><p>Innhold.</p>")
	gt.V(t, article.MetaDescription).Equal("Finn kvitteringene dine fra Elkjøp på sekunder.")
}

func TestParseArticleSurroundingProse(t *testing.T) {
	raw := "Her er artikkelen du ba om:\n\n" +
		`{"title": "Garanti på mobil", "html": "<p>Alt om garanti.</p>"}` +
		"\n\nHåper dette passer!"

	article := gt.R1(writer.ParseArticle(raw)).NoError(t)
	gt.V(t, article.Title).Equal("Garanti på mobil")
	gt.V(t, article.HTML).Equal("<p>Alt om garanti.</p>")
}

func TestParseArticleStripsH1AndFences(t *testing.T) {
	raw := `{"title": "Tittel", "html": "` + "```html\\n" +
		`<h1 class=\"lede\">Tittel</h1><p>Ingress.</p><h2>Del to</h2>` + "\\n```" + `"}`

	article := gt.R1(writer.ParseArticle(raw)).NoError(t)
	gt.True(t, !strings.Contains(article.HTML, "<h1"))
	gt.True(t, !strings.Contains(article.HTML, "```"))
	gt.V(t, article.HTML).Equal("<p>Ingress.</p><h2>Del to</h2>")
}

func TestParseArticleWrapsBareText(t *testing.T) {
	raw := `{"title": "Tittel", "html": "Første avsnitt.\n\nAndre avsnitt."}`

	article := gt.R1(writer.ParseArticle(raw)).NoError(t)
	gt.V(t, article.HTML).Equal("<p>Første avsnitt.</p><p>Andre avsnitt.</p>")
}

func TestParseArticleMissingFields(t *testing.T) {
	_, err := writer.ParseArticle(`{"title": "Bare tittel"}`)
	gt.Error(t, err)
}

func TestParseArticlePlainTextFallback(t *testing.T) {
	raw := strings.Join([]string{
		"# Mistet kvitteringen? Dette gjør du",
		"Det skjer alle: kvitteringen er borte når du trenger den.",
		"## Sjekk e-posten først",
		"Mange butikker sender kvitteringen på e-post.",
		"- Søk på butikknavnet",
		"- Sjekk søppelpost",
		"## Spør butikken",
		"De fleste kjeder kan finne kjøpet ditt.",
	}, "\n")

	article := gt.R1(writer.ParseArticle(raw)).NoError(t)
	gt.V(t, article.Title).Equal("Mistet kvitteringen? Dette gjør du")
	gt.V(t, article.Excerpt).Equal("Det skjer alle: kvitteringen er borte når du trenger den.")
	gt.True(t, strings.Contains(article.HTML, "<h2>Sjekk e-posten først</h2>"))
	gt.True(t, strings.Contains(article.HTML, "<ul><li>Søk på butikknavnet</li><li>Sjekk søppelpost</li></ul>"))
}

func TestParseArticleUnusableResponse(t *testing.T) {
	_, err := writer.ParseArticle("ok")
	gt.Error(t, err)
}
