package cdpdoc

// Passage is a scored section of a live documentation page.
type Passage struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Score   int    `json:"score"`
	URL     string `json:"url"`
}
