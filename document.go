package cdpdoc

import "context"

// DocType is the kind of documentation page, derived from its title.
type DocType string

// DocType values, in classification rule order.
const (
	DocTypeHowTo     DocType = "how-to"
	DocTypeReference DocType = "technical-reference"
	DocTypeConcept   DocType = "conceptual"
	DocTypeGeneral   DocType = "general"
)

// Category is the topical area a document belongs to.
type Category string

// Category values, in classification rule order.
const (
	CategorySetup          Category = "setup"
	CategoryIntegration    Category = "integration"
	CategoryUserManagement Category = "user_management"
	CategoryDataManagement Category = "data_management"
	CategoryAnalytics      Category = "analytics"
	CategorySecurity       Category = "security"
	CategoryGeneral        Category = "general"
)

// Difficulty is an estimate of how technical a document is.
type Difficulty string

// Difficulty values.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Document represents one crawled and classified documentation page.
// Every field is derived from (URL, Title, Content, Platform); documents are
// never mutated after creation, a re-crawl replaces them.
type Document struct {
	URL        string   `json:"url"`
	Title      string   `json:"title"`
	Platform   Platform `json:"platform"`
	Content    string   `json:"content"`
	Type       DocType  `json:"type"`
	Keywords   []string `json:"keywords"`
	HowToSteps []string `json:"howto_steps"`
	Metadata   Metadata `json:"metadata"`
}

// Metadata holds derived classification attributes of a Document.
type Metadata struct {
	// LastUpdated is always null; vendor pages carry no reliable date.
	LastUpdated *string    `json:"last_updated"`
	Category    Category   `json:"category"`
	Difficulty  Difficulty `json:"difficulty_level"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if !d.Platform.Valid() {
		return Errorf(EINVALID, "document platform %q unknown", d.Platform)
	}
	return nil
}

// DocumentStore persists document sets, one per platform.
// A save replaces the platform's previous set wholesale.
type DocumentStore interface {
	// LoadDocuments returns the platform's document set in crawl order.
	// Returns ENOTFOUND if no set has been saved for the platform.
	LoadDocuments(ctx context.Context, platform Platform) ([]*Document, error)

	// SaveDocuments overwrites the platform's document set.
	SaveDocuments(ctx context.Context, platform Platform, docs []*Document) error
}
