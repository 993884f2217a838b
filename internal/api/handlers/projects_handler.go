package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/doc-studio/engine/internal/api/middleware"
	"github.com/doc-studio/engine/internal/api/types"
	"github.com/doc-studio/engine/internal/api/validators"
	"github.com/doc-studio/engine/internal/services"
	"github.com/doc-studio/engine/pkg/errors"
	"github.com/doc-studio/engine/pkg/utils"
)

type ProjectsHandler struct {
	projects services.ProjectService
}

func NewProjectsHandler(projects services.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.projects.ListProjects(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OKList(types.NewProjectListView(items), len(items)))
}

func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	headings := make([]string, 0, len(req.Sections))
	for _, s := range req.Sections {
		headings = append(headings, s.Heading)
	}
	p, err := h.projects.CreateProject(r.Context(), middleware.GetUserID(r.Context()), &services.CreateProjectInput{
		Title:    req.Title,
		Topic:    req.Topic,
		DocType:  req.DocType,
		Headings: headings,
		Config:   req.Config,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.OK(types.NewProjectDetailView(p)))
}

func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.projects.GetProject(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(types.NewProjectDetailView(p)))
}

func (h *ProjectsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req types.GenerateRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorStr(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	p, err := h.projects.GenerateContent(r.Context(), id, middleware.GetUserID(r.Context()), req.Regenerate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(types.NewProjectDetailView(p)))
}

func (h *ProjectsHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, err := h.projects.ExportProject(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", res.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("ETag", `"`+utils.SumSHA256(res.Data)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.projects.DeleteProject(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.OK(map[string]string{"status": "deleted"}))
}

// pathID parses the {id} route parameter. A malformed id is reported as not
// found, the same as an id that does not exist.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		status, body := types.FromAppError(errors.New(errors.CodeNotFound, "resource not found"))
		writeJSON(w, status, body)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := types.FromAppError(err)
	writeJSON(w, status, body)
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.Fail("invalid", msg))
}
