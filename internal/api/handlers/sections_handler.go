package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doc-studio/engine/internal/api/middleware"
	"github.com/doc-studio/engine/internal/api/types"
	"github.com/doc-studio/engine/internal/api/validators"
	"github.com/doc-studio/engine/internal/services"
)

type SectionsHandler struct {
	projects services.ProjectService
}

func NewSectionsHandler(projects services.ProjectService) *SectionsHandler {
	return &SectionsHandler{projects: projects}
}

func (h *SectionsHandler) Refine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req types.RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	sec, err := h.projects.RefineSection(r.Context(), id, middleware.GetUserID(r.Context()), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(types.NewSectionView(sec)))
}

func (h *SectionsHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	sec, err := h.projects.LeaveFeedback(r.Context(), id, middleware.GetUserID(r.Context()), &services.FeedbackInput{
		IsPositive: req.IsPositive,
		Comment:    req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(types.NewSectionView(sec)))
}
