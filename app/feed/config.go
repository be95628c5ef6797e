package feed

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultFeed returns the library defaults every assembled feed starts from.
func DefaultFeed() *Feed {
	return &Feed{
		UpdatedAt:  Now(),
		Categories: []string{},
		Items:      []*Item{},
	}
}

// Overrides is one configuration layer. A nil field leaves the value of the
// previous layer in place; a set field replaces it wholesale, including the
// Categories and Items slices. Keys outside the recognized set are dropped
// when decoding YAML.
type Overrides struct {
	Title        *string    `yaml:"title"`
	SiteURL      *string    `yaml:"site_url"`
	UpdatedAt    *DateInput `yaml:"updated_at"`
	Description  *string    `yaml:"description"`
	SelfAtomPath *string    `yaml:"self_atom"`
	SelfRSSPath  *string    `yaml:"self_rss"`
	AuthorName   *string    `yaml:"author_name"`
	AuthorEmail  *string    `yaml:"author_email"`
	AuthorURL    *string    `yaml:"author_url"`
	Copyright    *string    `yaml:"copyright"`
	Language     *string    `yaml:"language"`
	Generator    *string    `yaml:"generator"`
	Categories   *[]string  `yaml:"categories"`
	Items        *[]*Item   `yaml:"items"`
	UseCDATA     *bool      `yaml:"use_cdata"`
}

// Apply writes every set field of o onto f.
func (o Overrides) Apply(f *Feed) {
	setString(&f.Title, o.Title)
	setString(&f.SiteURL, o.SiteURL)
	if o.UpdatedAt != nil {
		f.UpdatedAt = *o.UpdatedAt
	}
	setString(&f.Description, o.Description)
	setString(&f.SelfAtomPath, o.SelfAtomPath)
	setString(&f.SelfRSSPath, o.SelfRSSPath)
	setString(&f.AuthorName, o.AuthorName)
	setString(&f.AuthorEmail, o.AuthorEmail)
	setString(&f.AuthorURL, o.AuthorURL)
	setString(&f.Copyright, o.Copyright)
	setString(&f.Language, o.Language)
	setString(&f.Generator, o.Generator)
	if o.Categories != nil {
		f.Categories = append([]string{}, (*o.Categories)...)
	}
	if o.Items != nil {
		f.Items = append([]*Item{}, (*o.Items)...)
	}
	if o.UseCDATA != nil {
		f.UseCDATA = *o.UseCDATA
	}
}

// UnmarshalYAML rejects an items value that is not a sequence with an
// InvalidShape error instead of a generic decode failure. An explicit null
// updated_at sets an absent date, which fails validation, rather than
// leaving the previous layer in place.
func (o *Overrides) UnmarshalYAML(node *yaml.Node) error {
	nullDate := false
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			isNull := value.ShortTag() == "!!null"
			switch {
			case key.Value == "items" && value.Kind != yaml.SequenceNode && !isNull:
				return feedError(InvalidShape, "items")
			case key.Value == "updated_at" && isNull:
				nullDate = true
			}
		}
	}

	type plain Overrides
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode feed overrides: %w", err)
	}
	*o = Overrides(decoded)

	if nullDate {
		o.UpdatedAt = &DateInput{}
	}
	return nil
}

// Assemble layers external defaults and then caller overrides on top of a
// copy of defaults. defaults is never modified; a nil defaults means
// DefaultFeed().
func Assemble(defaults *Feed, external, overrides Overrides) *Feed {
	if defaults == nil {
		defaults = DefaultFeed()
	}

	f := *defaults
	f.Categories = append([]string{}, defaults.Categories...)
	f.Items = append([]*Item{}, defaults.Items...)

	external.Apply(&f)
	overrides.Apply(&f)

	return &f
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// itemDocument mirrors the YAML keys of a single entry.
type itemDocument struct {
	URL         string    `yaml:"url"`
	Title       string    `yaml:"title"`
	UpdatedAt   DateInput `yaml:"updated_at"`
	AuthorName  string    `yaml:"author_name"`
	AuthorEmail string    `yaml:"author_email"`
	AuthorURL   string    `yaml:"author_url"`
	Content     string    `yaml:"content"`
	Summary     string    `yaml:"summary"`
	LinkAlt     string    `yaml:"link_alt"`
	Categories  []string  `yaml:"categories"`
}

// UnmarshalYAML decodes an entry from its snake_case keys. A non-mapping
// entry is reported as InvalidShape.
func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return feedError(InvalidShape, "items")
	}

	var doc itemDocument
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode feed item: %w", err)
	}

	*it = Item{
		URL:         doc.URL,
		Title:       doc.Title,
		UpdatedAt:   doc.UpdatedAt,
		AuthorName:  doc.AuthorName,
		AuthorEmail: doc.AuthorEmail,
		AuthorURL:   doc.AuthorURL,
		Content:     doc.Content,
		Summary:     doc.Summary,
		LinkAlt:     doc.LinkAlt,
		Categories:  doc.Categories,
	}
	return nil
}
