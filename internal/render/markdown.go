package render

import (
	"strings"

	"github.com/doc-studio/engine/internal/models"
)

// buildMarkdown assembles the intermediate markdown pandoc converts from.
// Sections are emitted in the order given, which the caller guarantees to be
// position order.
func buildMarkdown(p *models.Project) string {
	var b strings.Builder

	switch p.DocType {
	case models.DocTypePPT:
		// Title slide from the pandoc title block, one H1 per content slide.
		b.WriteString("% " + p.Title + "\n")
		b.WriteString("% " + p.Topic + "\n\n")
		for _, s := range p.Sections {
			b.WriteString("# " + s.Heading + "\n\n")
			writeParagraphs(&b, s.Content)
		}
	default:
		b.WriteString("# " + p.Title + "\n\n")
		b.WriteString("Topic: " + p.Topic + "\n\n")
		for _, s := range p.Sections {
			b.WriteString("## " + s.Heading + "\n\n")
			writeParagraphs(&b, s.Content)
		}
	}

	return b.String()
}

func writeParagraphs(b *strings.Builder, content string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(line + "\n\n")
	}
}

// exportFilename is the attachment name: title with spaces as underscores
// plus the format extension.
func exportFilename(title, docType string) string {
	ext := ".docx"
	if docType == models.DocTypePPT {
		ext = ".pptx"
	}
	return strings.ReplaceAll(title, " ", "_") + ext
}
