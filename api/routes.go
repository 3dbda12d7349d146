package api

import (
	"github.com/gorilla/mux"

	"github.com/skillsphere/backend/internal/config"
	"github.com/skillsphere/backend/internal/roadmap"
	"github.com/skillsphere/backend/pkg/repository"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, users repository.UserRepo, roadmaps repository.RoadmapRepo, orch Orchestrator) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(users, cfg.JWTSecret, cfg.TokenDuration)
	roadmapsHandler := NewRoadmapsHandler(orch, roadmap.NewService(roadmaps, logger))

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Resume and roadmap endpoints
	apiV1.HandleFunc("/resume/parse", roadmapsHandler.ParseResume).Methods("POST")
	apiV1.HandleFunc("/roadmaps/generate", roadmapsHandler.GenerateRoadmap).Methods("POST")
	apiV1.HandleFunc("/roadmaps", roadmapsHandler.SaveRoadmap).Methods("POST")
	apiV1.HandleFunc("/roadmaps", roadmapsHandler.ListRoadmaps).Methods("GET")
	apiV1.HandleFunc("/roadmaps/{id}", roadmapsHandler.DeleteRoadmap).Methods("DELETE")
	apiV1.HandleFunc("/ai/reload", roadmapsHandler.ReloadSchemas).Methods("POST")

	return r
}
