// pkg/registry/schema.go
package registry

// CatalogFile is the on-disk interview catalog override format.
type CatalogFile struct {
	Version          string          `json:"version"`
	LastUpdated      string          `json:"lastUpdated"`
	Topics           []TopicEntry    `json:"topics"`
	Templates        []TemplateEntry `json:"templates"`
	RequiredSections []string        `json:"requiredSections"`
}

type TopicEntry struct {
	ID                 string   `json:"id"`
	Position           int      `json:"position"`
	Question           string   `json:"question"`
	SatisfactionPrompt string   `json:"satisfactionPrompt"`
	Keywords           []string `json:"keywords"`
	Phrases            []string `json:"phrases"`
}

type TemplateEntry struct {
	ID           string   `json:"id"`
	Template     string   `json:"template"`
	Position     int      `json:"position"`
	Title        string   `json:"title"`
	ContentKey   string   `json:"contentKey"`
	Keywords     []string `json:"keywords"`
	MinKeywords  int      `json:"minKeywords"`
	Required     bool     `json:"required"`
	TableHeaders []string `json:"tableHeaders,omitempty"`
}
