package search

import (
	"fmt"
	"strings"

	"github.com/fwojciec/cdpdoc"
	"github.com/fwojciec/cdpdoc/classify"
)

// NoResults is the answer when a query matches no document.
const NoResults = "I'm sorry, I couldn't find any relevant information for your question."

// excerptLen is the number of characters of content quoted in an answer.
const excerptLen = 500

// FormatResponse renders a document as an answer. How-to documents are
// shown as numbered steps, taken from the document or, if it has none,
// extracted from its content. Everything else, and how-to documents without
// steps, is shown as an excerpt. The source URL always ends the answer.
func FormatResponse(doc *cdpdoc.Document) string {
	var b strings.Builder

	if doc.Type == cdpdoc.DocTypeHowTo {
		fmt.Fprintf(&b, "Here's how to %s:\n\n", strings.ToLower(doc.Title))
		steps := doc.HowToSteps
		if len(steps) == 0 {
			steps = classify.ExtractDisplaySteps(doc.Content)
		}
		if len(steps) > 0 {
			for i, step := range steps {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step)
			}
		} else {
			b.WriteString(Excerpt(doc.Content) + "...\n")
		}
	} else {
		fmt.Fprintf(&b, "Here's what I found about %s:\n\n", doc.Title)
		b.WriteString(Excerpt(doc.Content) + "...\n")
	}

	fmt.Fprintf(&b, "\nFor more details, visit: %s", doc.URL)
	return b.String()
}

// Excerpt returns the first 500 characters of content.
func Excerpt(content string) string {
	rs := []rune(content)
	if len(rs) <= excerptLen {
		return content
	}
	return string(rs[:excerptLen])
}
