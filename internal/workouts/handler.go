package workouts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type historyRepo interface {
	ListRange(ctx context.Context, userID, from, to string) ([]LocalWorkoutRecord, error)
}

type HistoryResponse struct {
	Workouts []LocalWorkoutRecord `json:"workouts"`
	Total    int                  `json:"total"`
}

type Handler struct {
	repo historyRepo
}

func NewHandler(repo historyRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// HandleHistory returns the user's stored workouts whose start time falls
// within the [from, to] query range, most recent first.
func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.history")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		http.Error(w, "error, from or to empty", http.StatusBadRequest)
		return
	}

	records, err := handler.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		log.Errorf("failed to list workouts for user %s: %s", userID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(HistoryResponse{
		Workouts: records,
		Total:    len(records),
	})
	if err != nil {
		log.Errorf("failed to marshal workout history: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}
