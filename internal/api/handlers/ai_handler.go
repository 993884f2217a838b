package handlers

import (
	"net/http"
	"strings"

	"github.com/doc-studio/engine/internal/api/types"
	"github.com/doc-studio/engine/internal/generator"
	"github.com/doc-studio/engine/internal/models"
)

type AIHandler struct {
	gen generator.ContentGenerator
}

func NewAIHandler(gen generator.ContentGenerator) *AIHandler {
	return &AIHandler{gen: gen}
}

// SuggestOutline proposes section headings for a topic. It is stateless:
// nothing is persisted, the caller decides what to keep.
func (h *AIHandler) SuggestOutline(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.URL.Query().Get("topic"))
	docType := r.URL.Query().Get("doc_type")

	if topic == "" {
		writeErrorStr(w, http.StatusBadRequest, "topic is required")
		return
	}
	if docType != models.DocTypeWord && docType != models.DocTypePPT {
		writeErrorStr(w, http.StatusBadRequest, "doc_type must be word or ppt")
		return
	}

	headings := h.gen.SuggestOutline(r.Context(), topic, docType)
	writeJSON(w, http.StatusOK, types.OK(map[string]any{
		"topic":       topic,
		"doc_type":    docType,
		"suggestions": headings,
	}))
}
