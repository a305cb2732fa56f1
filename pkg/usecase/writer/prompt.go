package writer

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
)

//go:embed prompt/article.md
var articlePromptRaw string

var articlePromptTmpl = template.Must(template.New("article").Parse(articlePromptRaw))

// categoryBlocks holds the per-category drafting instructions. %[1]s is
// the site name, %[2]s the site URL.
var categoryBlocks = map[model.Category]string{
	model.CategoryTrending: `KATEGORI: Trending / Nyheter
Skriv en aktuell artikkel basert på nyheten eller trenden som er oppgitt.
- Forklar hva nyheten betyr for forbrukere
- Koble det til kvitteringer, garanti eller dokumentasjon
- Gi praktiske tips for leseren
- Vis hvordan %[2]s kan hjelpe i denne situasjonen`,

	model.CategorySEOGap: `KATEGORI: SEO Gap / Søkeord-mulighet
Skriv en artikkel som svarer på søket/spørsmålet som er oppgitt.
- Gi et grundig og nyttig svar på søket
- Dekk relaterte spørsmål leseren kan ha
- Inkluder praktiske steg-for-steg instruksjoner
- Vis hvordan %[2]s løser problemet`,

	model.CategoryStoreGuide: `KATEGORI: Butikkguide
Skriv en komplett guide for den spesifikke butikken.
- Forklar hvor kunden finner kvitteringer i butikkens system
- Nevn problemer med butikkens egen løsning (begrenset historikk, krever innlogging, etc.)
- Vis hvordan %[2]s er bedre - alt på ett sted
- Inkluder tips for retur, reklamasjon og garanti hos denne butikken`,

	model.CategoryBusiness: `KATEGORI: Bedrift / Enkeltpersonforetak
Skriv en artikkel rettet mot næringsdrivende og selvstendig næringsdrivende.
- Forklar dokumentasjonskrav og regler
- Gi praktiske tips for regnskapsføring
- Vis hvordan %[2]s sparer tid og sikrer compliance
- Inkluder relevante skattefradrag og MVA-regler`,

	model.CategoryProblemSolving: `KATEGORI: Problemløsning
Skriv en artikkel som løser et konkret problem.
- Start med å beskrive problemet leseren har
- Forklar hvorfor dette problemet oppstår
- Gi konkrete løsninger steg for steg
- Vis hvordan %[2]s forebygger dette problemet i fremtiden`,

	model.CategoryLifeSituation: `KATEGORI: Livssituasjon
Skriv en artikkel for en spesifikk livssituasjon.
- Forklar hvorfor kvitteringer er viktige i denne situasjonen
- Gi praktiske tips tilpasset situasjonen
- Vis hvordan %[2]s gjør hverdagen enklere
- Inkluder eksempler leseren kan kjenne seg igjen i`,

	model.CategoryFeatureHighlight: `KATEGORI: Funksjonshøydepunkt
Skriv en artikkel som viser frem en spesifikk funksjon i %[1]s.
- Forklar hva funksjonen gjør og hvordan den virker
- Gi konkrete brukseksempler
- Sammenlign med hvordan folk løser dette uten %[1]s
- Inkluder en tydelig call-to-action for å prøve tjenesten`,

	model.CategorySeasonal: `KATEGORI: Sesongbasert innhold
Skriv en artikkel tilpasset årstiden eller hendelsen.
- Knytt innholdet til aktuelle sesongbehov
- Gi tips som er relevante akkurat nå
- Vis hvordan %[2]s hjelper i denne perioden
- Skap en følelse av aktualitet og relevans`,

	model.CategoryAICreative: `KATEGORI: AI-Kreativt innhold
Dette er en kreativ artikkel basert på AI sin egen innsikt og kreativitet.

DU HAR FULL KREATIV FRIHET til å skrive denne artikkelen på din egen måte!

- Vær kreativ og original i vinklingen
- Skap engasjerende innhold som overrasker leseren
- Bruk storytelling, eksempler, analogier eller uventede perspektiver
- Skriv noe som skiller seg ut fra standard SEO-innhold
- Du kan utforske uventede koblinger til kvitteringer og dokumentasjon
- Tenk "hva ville vært interessant å lese?" - ikke bare "hva søker folk på"

MULIGE KREATIVE VINKLER:
- Overraskende statistikk eller fakta om kvitteringer
- Sammenligning med andre lands systemer
- Fremtidsperspektiver og trender
- Psykologien bak å ta vare på ting
- Uventede livssituasjoner der dokumentasjon redder dagen
- "Det du ikke visste om..." artikler
- Myter og misforståelser om garanti/reklamasjon

HUSK: Selv om du er kreativ, skal artikkelen fortsatt være:
- Relevant for %[1]s og kvitteringslagring
- Nyttig og verdifull for leseren
- SEO-vennlig med god struktur
- Inkludere naturlige lenker til %[2]s`,
}

func (uc *UseCase) buildArticlePrompt(info model.TopicInfo) (string, error) {
	var categoryBlock string
	if block, ok := categoryBlocks[info.Category]; ok {
		categoryBlock = fmt.Sprintf(block, uc.site.Name, uc.site.URL)
	}

	var store string
	if info.Store != nil {
		store = info.Store.Store
	}

	year := uc.now().Year()
	var buf bytes.Buffer
	if err := articlePromptTmpl.Execute(&buf, map[string]any{
		"SiteName":      uc.site.Name,
		"SiteURL":       uc.site.URL,
		"Year":          year,
		"LastYear":      year - 1,
		"CategoryBlock": categoryBlock,
		"Topic":         info.Topic,
		"Query":         info.Query,
		"Store":         store,
		"Rationale":     info.Rationale,
		"Keywords":      strings.Join(info.Keywords, ", "),
		"Creative":      info.DataSource == "ai-creative",
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute article prompt template")
	}

	return buf.String(), nil
}
