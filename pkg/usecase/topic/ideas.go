package topic

import (
	"bufio"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minekvitteringer/skribent/pkg/model"
)

// FileIdea is one entry parsed from a hand-written ideas file.
type FileIdea struct {
	ID       int
	Title    string
	Slug     string
	Keyword  string
	Section  string
	Category model.Category
}

// sectionCategories maps section-header keywords to a category. Checked in
// order: longer phrases must come before their prefixes.
var sectionCategories = []struct {
	keyword  string
	category model.Category
}{
	{"kvitteringer og garanti", model.CategorySEOGap},
	{"forbrukerrettigheter", model.CategorySEOGap},
	{"regnskap og økonomi", model.CategoryBusiness},
	{"regnskap", model.CategoryBusiness},
	{"digital organisering", model.CategoryFeatureHighlight},
	{"skatteoppgjør", model.CategoryBusiness},
	{"fradrag", model.CategoryBusiness},
	{"guider", model.CategoryFeatureHighlight},
	{"how-to", model.CategoryFeatureHighlight},
	{"sesongbasert", model.CategorySeasonal},
	{"bransje", model.CategorySEOGap},
}

// keywordCategories is the fallback when the section name gives no match:
// the idea's title and focus keyword are scanned for these terms.
var keywordCategories = []struct {
	keywords []string
	category model.Category
}{
	{[]string{"garanti", "reklamasjon", "forbrukerkjøp", "angrerett", "bytterett", "refusjon", "mangel", "heving", "klage"}, model.CategorySEOGap},
	{[]string{"regnskap", "mva", "bilag", "bokføring", "skattefradrag", "fradrag", "enkeltpersonforetak", "frilanser", "reiseregning", "kjøregodtgjørelse", "skatterevisjon", "representasjon"}, model.CategoryBusiness},
	{[]string{"mine kvitteringer", "skanne", "videresend", "vipps", "organisere kvitteringer", "prøveperiode"}, model.CategoryFeatureHighlight},
	{[]string{"julehandel", "black friday", "sommersalg", "nyttårsforsett", "skattemelding-sesong", "skolestart", "vårrengjøring", "ferieklar", "januar-salg", "konfirmasjon"}, model.CategorySeasonal},
	{[]string{"digital", "gdpr", "skylagring", "ocr", "datasikkerhet", "papirløs"}, model.CategoryFeatureHighlight},
	{[]string{"mistet kvittering", "blekner", "uten kvittering"}, model.CategoryProblemSolving},
}

var (
	separatorRe = regexp.MustCompile(`^[─]+$`)
	sectionRe   = regexp.MustCompile(`^\d+\.\s+(.+?)(?:\s*\(\d+\))?\s*$`)
	ideaIDRe    = regexp.MustCompile(`^#:\s*(\d+)\s*$`)
	titleRe     = regexp.MustCompile(`^Tittel:\s*(.+)$`)
	slugRe      = regexp.MustCompile(`^Slug:\s*(.+)$`)
	keywordRe   = regexp.MustCompile(`^Fokus-nøkkelord:\s*(.+)$`)
)

// ParseIdeasFile reads a structured ideas file:
//
//	1. Seksjonsnavn (15)
//
//	#: 1
//	Tittel: Artikkeltittel her
//	Slug: artikkel-slug-her
//	Fokus-nøkkelord: fokusord
//	────────────────────────────────────────
//
// Blank lines and separator rules end the current entry. Entries without a
// title are dropped.
func ParseIdeasFile(path string) ([]FileIdea, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open ideas file", goerr.V("path", path))
	}
	defer f.Close()

	var (
		ideas   []FileIdea
		section string
		current *FileIdea
	)

	flush := func() {
		if current != nil && current.Title != "" {
			current.Section = section
			current.Category = detectCategory(*current, section)
			ideas = append(ideas, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || separatorRe.MatchString(line) {
			flush()
			continue
		}

		if m := sectionRe.FindStringSubmatch(line); m != nil {
			flush()
			section = strings.TrimSpace(m[1])
			continue
		}

		if m := ideaIDRe.FindStringSubmatch(line); m != nil {
			flush()
			id, _ := strconv.Atoi(m[1])
			current = &FileIdea{ID: id}
			continue
		}

		if current == nil {
			continue
		}
		if m := titleRe.FindStringSubmatch(line); m != nil {
			current.Title = strings.TrimSpace(m[1])
		} else if m := slugRe.FindStringSubmatch(line); m != nil {
			current.Slug = strings.TrimSpace(m[1])
		} else if m := keywordRe.FindStringSubmatch(line); m != nil {
			current.Keyword = strings.TrimSpace(m[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read ideas file", goerr.V("path", path))
	}
	flush()

	return ideas, nil
}

// detectCategory picks a category from the section name first, then from
// terms in the title and focus keyword.
func detectCategory(idea FileIdea, section string) model.Category {
	if section != "" {
		sectionLower := strings.ToLower(section)
		for _, entry := range sectionCategories {
			if strings.Contains(sectionLower, entry.keyword) {
				return entry.category
			}
		}
	}

	text := strings.ToLower(idea.Title + " " + idea.Keyword)
	for _, entry := range keywordCategories {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}

	return model.CategorySEOGap
}

// ToTopics converts parsed file ideas into topic selections for the
// drafting pipeline.
func ToTopics(ideas []FileIdea) []model.TopicInfo {
	topics := make([]model.TopicInfo, 0, len(ideas))
	for _, idea := range ideas {
		topics = append(topics, model.TopicInfo{
			Category:   idea.Category,
			Topic:      idea.Title,
			Query:      idea.Keyword,
			Slug:       idea.Slug,
			DataSource: "custom-file",
		})
	}
	return topics
}
