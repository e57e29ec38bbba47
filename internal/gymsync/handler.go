package gymsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=gymsync_test

type syncEngine interface {
	Sync(ctx context.Context, req Request) (Result, error)
	Status(userID string) Status
}

type StatusResponse struct {
	UserID string `json:"user_id"`
	Status Status `json:"status"`
}

type Handler struct {
	engine syncEngine
}

func NewHandler(engine syncEngine) *Handler {
	return &Handler{
		engine: engine,
	}
}

func (handler *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymsync.sync")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("sync request, unmarshal json params: %s", err)
		http.Error(w, "sync failed", http.StatusBadRequest)
		return
	}

	if req.UserID == "" || req.APIKey == "" {
		http.Error(w, "error, user id or api key empty", http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		req.Mode = ModeRecent
	}
	if req.Mode != ModeRecent && req.Mode != ModeFull {
		http.Error(w, "error, mode must be recent or full", http.StatusBadRequest)
		return
	}

	result, err := handler.engine.Sync(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			http.Error(w, "sync already in progress", http.StatusConflict)
			return
		}
		log.Errorf("sync for user %s: %s", req.UserID, err)
		http.Error(w, "sync failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal sync result: %s", err)
		http.Error(w, "failed to marshal sync result", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.gymsync.status")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	statusJson, err := json.Marshal(StatusResponse{
		UserID: userID,
		Status: handler.engine.Status(userID),
	})
	if err != nil {
		log.Errorf("failed to marshal sync status: %s", err)
		http.Error(w, "failed to marshal sync status", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statusJson, http.StatusOK)
}
