package search

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=search_test

const defaultSearchLimit = 10

type searchIndex interface {
	SearchExercises(ctx context.Context, query string, limit int) ([]Hit, error)
	SearchWorkoutHistory(ctx context.Context, userID, query string, limit int) ([]Hit, error)
}

type SearchResponse struct {
	Hits  []Hit `json:"hits"`
	Total int   `json:"total"`
}

type Handler struct {
	index searchIndex
}

func NewHandler(index searchIndex) *Handler {
	return &Handler{
		index: index,
	}
}

func (handler *Handler) HandleSearchExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.search.exercises")
	defer span.End()

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "error, query empty", http.StatusBadRequest)
		return
	}

	hits, err := handler.index.SearchExercises(ctx, query, searchLimit(r))
	if err != nil {
		log.Errorf("exercise search for %q: %s", query, err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	handler.writeHits(w, hits)
}

func (handler *Handler) HandleSearchWorkoutHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.search.workoutHistory")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "error, query empty", http.StatusBadRequest)
		return
	}

	hits, err := handler.index.SearchWorkoutHistory(ctx, userID, query, searchLimit(r))
	if err != nil {
		log.Errorf("workout history search for user %s, %q: %s", userID, query, err)
		http.Error(w, "search failed", http.StatusInternalServerError)
		return
	}
	handler.writeHits(w, hits)
}

func (handler *Handler) writeHits(w http.ResponseWriter, hits []Hit) {
	hitsJson, err := json.Marshal(SearchResponse{
		Hits:  hits,
		Total: len(hits),
	})
	if err != nil {
		log.Errorf("failed to marshal search hits: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, hitsJson, http.StatusOK)
}

func searchLimit(r *http.Request) int {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return defaultSearchLimit
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return defaultSearchLimit
	}
	return limit
}
