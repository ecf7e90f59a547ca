package goquery

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/classify"
)

var _ cdpdoc.PassageFinder = (*Extractor)(nil)

// DefaultSectionTitle is used when no heading precedes a section.
const DefaultSectionTitle = "Documentation Section"

var sectionClass = regexp.MustCompile(`doc|content|article`)

// FindPassages returns every article, section or div whose class mentions
// doc, content or article and whose text contains at least one term.
// Nested matches are reported separately.
func (e *Extractor) FindPassages(htmlContent, pageURL string, terms []string) ([]cdpdoc.Passage, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, cdpdoc.Errorf(cdpdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	var (
		passages []cdpdoc.Passage
		heading  *goquery.Selection
	)
	// Document order: a heading seen before an element precedes it.
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3":
			heading = s
			return
		case "article", "section", "div":
		default:
			return
		}
		if !sectionClass.MatchString(s.AttrOr("class", "")) {
			return
		}

		text := s.Text()
		if !containsAnyTerm(strings.ToLower(text), terms) {
			return
		}

		title := DefaultSectionTitle
		if heading != nil {
			title = CleanText(heading.Text())
		}
		content := CleanText(text)

		passages = append(passages, cdpdoc.Passage{
			Title:   title,
			Content: content,
			Score:   score(strings.ToLower(content), terms),
			URL:     passageURL(page, pageURL, s),
		})
	})

	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})
	return passages, nil
}

// CleanText collapses whitespace runs to single spaces and drops every
// character other than word characters, whitespace and . , ? ! -
func CleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Map(func(r rune) rune {
		if classify.IsWordRune(r) || unicode.IsSpace(r) || strings.ContainsRune(".,?!-", r) {
			return r
		}
		return -1
	}, s)
}

func containsAnyTerm(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func score(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		n += strings.Count(text, t)
	}
	return n
}

// passageURL returns the href of the nearest enclosing anchor resolved
// against the page, or the page URL itself.
func passageURL(page *url.URL, pageURL string, s *goquery.Selection) string {
	a := s.ParentsFiltered("a").First()
	if a.Length() == 0 {
		return pageURL
	}
	return resolveURL(page, a.AttrOr("href", ""))
}
