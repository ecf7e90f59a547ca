// Package classify derives document attributes from page titles and text.
// Every function is pure; rule tables are evaluated in declaration order and
// the first match wins.
package classify

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/cdpdoc"
)

type typeRule struct {
	docType cdpdoc.DocType
	words   []string
}

var typeRules = []typeRule{
	{cdpdoc.DocTypeHowTo, []string{"how to", "guide", "tutorial"}},
	{cdpdoc.DocTypeReference, []string{"api", "reference", "sdk"}},
	{cdpdoc.DocTypeConcept, []string{"concept", "overview", "introduction"}},
}

type categoryRule struct {
	category cdpdoc.Category
	words    []string
}

var categoryRules = []categoryRule{
	{cdpdoc.CategorySetup, []string{"setup", "installation", "getting started"}},
	{cdpdoc.CategoryIntegration, []string{"integrate", "connection", "connector"}},
	{cdpdoc.CategoryUserManagement, []string{"user", "profile", "identity"}},
	{cdpdoc.CategoryDataManagement, []string{"data", "schema", "model"}},
	{cdpdoc.CategoryAnalytics, []string{"analytics", "reporting", "dashboard"}},
	{cdpdoc.CategorySecurity, []string{"security", "privacy", "authentication"}},
}

var technicalTerms = []string{"api", "sdk", "code", "implementation", "configuration"}

// domainTerms are kept as keywords regardless of length.
var domainTerms = map[string]bool{
	"segment":     true,
	"audience":    true,
	"profile":     true,
	"integration": true,
	"source":      true,
	"destination": true,
	"tracking":    true,
	"identity":    true,
	"data":        true,
	"analytics":   true,
	"api":         true,
}

// Classify returns the document type implied by the title.
// Content is accepted for symmetry with Categorize but does not affect the result.
func Classify(title, _ string) cdpdoc.DocType {
	t := strings.ToLower(title)
	for _, rule := range typeRules {
		if containsAny(t, rule.words) {
			return rule.docType
		}
	}
	return cdpdoc.DocTypeGeneral
}

// Categorize returns the first category whose keywords occur in the title or content.
func Categorize(title, content string) cdpdoc.Category {
	t := strings.ToLower(title)
	c := strings.ToLower(content)
	for _, rule := range categoryRules {
		for _, w := range rule.words {
			if strings.Contains(t, w) || strings.Contains(c, w) {
				return rule.category
			}
		}
	}
	return cdpdoc.CategoryGeneral
}

// EstimateDifficulty counts how many technical terms appear in the content.
// Each term counts once. More than five is advanced, which five terms can
// never reach, so in practice the result is beginner or intermediate.
func EstimateDifficulty(content string) cdpdoc.Difficulty {
	c := strings.ToLower(content)
	count := 0
	for _, term := range technicalTerms {
		if strings.Contains(c, term) {
			count++
		}
	}
	switch {
	case count > 5:
		return cdpdoc.DifficultyAdvanced
	case count > 2:
		return cdpdoc.DifficultyIntermediate
	default:
		return cdpdoc.DifficultyBeginner
	}
}

// ExtractKeywords returns the distinct lowercase words of title and content
// that are domain terms or longer than four characters, sorted.
func ExtractKeywords(title, content string) []string {
	seen := make(map[string]bool)
	for _, word := range Words(title + " " + content) {
		if domainTerms[word] || utf8.RuneCountInString(word) > 4 {
			seen[word] = true
		}
	}
	keywords := make([]string, 0, len(seen))
	for w := range seen {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}

// Words lowercases s and splits it into runs of word characters
// (letters, digits, marks and underscore).
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !IsWordRune(r)
	})
}

// IsWordRune reports whether r is a word character.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// NewDocument builds a classified document for a crawled page.
// An empty title falls back to the last segment of the URL path.
func NewDocument(pageURL, title, content string, platform cdpdoc.Platform) *cdpdoc.Document {
	if title == "" {
		title = TitleFromURL(pageURL)
	}
	return &cdpdoc.Document{
		URL:        pageURL,
		Title:      title,
		Platform:   platform,
		Content:    content,
		Type:       Classify(title, content),
		Keywords:   ExtractKeywords(title, content),
		HowToSteps: ExtractSteps(content),
		Metadata: cdpdoc.Metadata{
			Category:   Categorize(title, content),
			Difficulty: EstimateDifficulty(content),
		},
	}
}

// TitleFromURL returns the last non-empty path segment of rawURL,
// or rawURL itself when the path has none.
func TitleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if last := segments[len(segments)-1]; last != "" {
		return last
	}
	return rawURL
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
