package generator

import (
	"fmt"
	"strings"
)

func sectionPrompt(in SectionInput) string {
	kind := strings.ToUpper(in.DocType)

	if in.RefinePrompt != "" {
		existing := in.CurrentContent
		if existing == "" {
			existing = "N/A"
		}
		return fmt.Sprintf(
			"You are refining content for a %s document titled '%s'.\n"+
				"Section/Slide heading: %s\n"+
				"Existing content:\n%s\n\n"+
				"Instructions: %s\n"+
				"Return polished content only.",
			kind, in.Topic, in.Heading, existing, in.RefinePrompt)
	}

	hint := "Provide rich paragraphs with sub-points."
	if in.DocType == "ppt" {
		hint = "Return bullet points and speaker notes suitable for a slide."
	}
	return fmt.Sprintf(
		"Write content for a %s document on '%s'.\n"+
			"Section/Slide heading: %s\n%s",
		kind, in.Topic, in.Heading, hint)
}

func outlinePrompt(topic, docType string) string {
	return fmt.Sprintf(
		"Suggest an outline for a %s document about '%s'. "+
			"Return 5-7 concise headings, one per line.",
		strings.ToUpper(docType), topic)
}
