package document

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// Template identifiers.
const (
	TemplateModern    = "modern"
	TemplateClassic   = "classic"
	TemplateCreative  = "creative"
	TemplateMinimal   = "minimal"
	TemplateExecutive = "executive"
	TemplateTechnical = "technical"

	DefaultTemplate = TemplateModern
)

// Template describes one of the built-in presentation styles.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var templates = []Template{
	{TemplateModern, "Modern", "Gradient header, card sections and pill-shaped skills."},
	{TemplateClassic, "Classic", "Serif typography with ruled headings in saddle brown."},
	{TemplateCreative, "Creative", "Colourful gradients, playful icons and rounded cards."},
	{TemplateMinimal, "Minimal", "Light type, generous whitespace and hairline rules."},
	{TemplateExecutive, "Executive", "Dark banner, gold accents and justified text."},
	{TemplateTechnical, "Technical", "Monospace headings with a code-comment motif."},
}

// TemplateIDs returns the known template identifiers in display order.
func TemplateIDs() []string {
	ids := make([]string, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	return ids
}

// Templates returns metadata for every built-in template.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ResolveTemplate normalizes id and reports whether it names a known
// template. Unknown ids resolve to DefaultTemplate.
func ResolveTemplate(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range templates {
		if t.ID == id {
			return id, true
		}
	}
	return DefaultTemplate, false
}

// TemplateCSS returns the shared base stylesheet followed by the stylesheet
// of the requested template. Unknown ids fall back to the modern template.
func TemplateCSS(id string) string {
	id, _ = ResolveTemplate(id)
	return mustStyle("base") + mustStyle(id)
}

func mustStyle(name string) string {
	b, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		// every template id has an embedded file; reaching this is a build defect
		panic(fmt.Sprintf("document: missing embedded style %q: %v", name, err))
	}
	return string(b)
}
