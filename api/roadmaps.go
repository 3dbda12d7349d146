package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skillsphere/backend/internal/roadmap"
	"github.com/skillsphere/backend/pkg/models"
)

// Orchestrator is the slice of the AI engine the handlers use. Tests
// substitute a stub.
type Orchestrator interface {
	GenerateRoadmap(ctx context.Context, req models.RoadmapRequest) ([]models.RoadmapStep, error)
	ParseResume(ctx context.Context, resumeText string) (*models.SkillProfile, error)
	ReloadSchemas(ctx context.Context) error
}

type RoadmapsHandler struct {
	orch Orchestrator
	svc  *roadmap.Service
}

func NewRoadmapsHandler(orch Orchestrator, svc *roadmap.Service) *RoadmapsHandler {
	return &RoadmapsHandler{orch: orch, svc: svc}
}

type parseResumeRequest struct {
	ResumeText string `json:"resume_text"`
}

type roadmapResponse struct {
	Roadmap []models.RoadmapStep `json:"roadmap"`
}

type saveRoadmapRequest struct {
	RoadmapData     models.RoadmapRequest `json:"roadmap_data"`
	RoadmapResponse roadmapResponse       `json:"roadmap_response"`
}

func (h *RoadmapsHandler) ParseResume(w http.ResponseWriter, r *http.Request) {
	var req parseResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	profile, err := h.orch.ParseResume(r.Context(), req.ResumeText)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}

func (h *RoadmapsHandler) GenerateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req models.RoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	steps, err := h.orch.GenerateRoadmap(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, roadmapResponse{Roadmap: steps}, http.StatusOK)
}

func (h *RoadmapsHandler) SaveRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	var req saveRoadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Save(r.Context(), userID, req.RoadmapData, req.RoadmapResponse.Roadmap)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, rec, http.StatusCreated)
}

func (h *RoadmapsHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	recs, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, recs, http.StatusOK)
}

func (h *RoadmapsHandler) DeleteRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReloadSchemas re-reads validation schemas from the database so new schema
// versions apply without a restart.
func (h *RoadmapsHandler) ReloadSchemas(w http.ResponseWriter, r *http.Request) {
	if err := h.orch.ReloadSchemas(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("reload schemas: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
