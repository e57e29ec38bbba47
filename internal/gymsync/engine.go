package gymsync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/hevy"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/metrics"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=gymsync_test

const (
	ModeRecent = "recent"
	ModeFull   = "full"

	// demo accounts are reseeded often and must never trust a stale
	// watermark, so they always get a full sync
	demoKeyPrefix = "demo-"
)

type DeletionPolicy string

const (
	DeletionPolicyIgnore     DeletionPolicy = "ignore"
	DeletionPolicySoftDelete DeletionPolicy = "soft_delete"
	DeletionPolicyHardDelete DeletionPolicy = "hard_delete"
)

var ErrSyncInProgress = errors.New("sync already in progress for this user")

type RemoteAPI interface {
	Workouts(ctx context.Context, from, to time.Time) ([]hevy.Workout, error)
	WorkoutEvents(ctx context.Context, since time.Time) ([]hevy.WorkoutEvent, error)
	WorkoutDetails(ctx context.Context, workoutID string) (*hevy.Workout, error)
	ExerciseTemplates(ctx context.Context) ([]hevy.ExerciseTemplate, error)
}

type workoutsStore interface {
	BatchUpsert(ctx context.Context, records []workouts.LocalWorkoutRecord) ([]string, error)
	Upsert(ctx context.Context, record workouts.LocalWorkoutRecord) (string, error)
	GetWatermark(ctx context.Context, userID string) (time.Time, error)
	SetWatermark(ctx context.Context, userID string, ts time.Time) error
	UpsertTemplates(ctx context.Context, templates []hevy.ExerciseTemplate, userID *string) (int, error)
	MarkDeleted(ctx context.Context, userID, remoteID string) error
	Delete(ctx context.Context, userID, remoteID string) error
}

type duplicateResolver interface {
	FindExisting(ctx context.Context, userID string, remoteIDs []string) map[string]struct{}
}

type searchIndex interface {
	IndexWorkoutHistory(ctx context.Context, records []workouts.LocalWorkoutRecord) error
	IndexExercises(ctx context.Context, templates []hevy.ExerciseTemplate) error
}

type Request struct {
	UserID string `json:"user_id"`
	APIKey string `json:"api_key"`
	Mode   string `json:"mode"`
}

type Result struct {
	Status       string `json:"status"`
	NewCount     int    `json:"new_count"`
	SkippedCount int    `json:"skipped_count"`
	Message      string `json:"message"`
}

// Engine drives one sync run end to end: strategy selection, remote fetch,
// duplicate resolution, batched writes with per-record fallback, best-effort
// index projection, and the watermark update.
type Engine struct {
	store           workoutsStore
	resolver        duplicateResolver
	index           searchIndex
	status          *StatusRegistry
	metrics         *metrics.Manager
	newRemoteClient func(apiKey string) RemoteAPI

	recentWindow   time.Duration
	retryAttempts  int
	retryBackoff   time.Duration
	deletionPolicy DeletionPolicy

	now func() time.Time
}

type NewEngineParams struct {
	Store           workoutsStore
	Resolver        duplicateResolver
	Index           searchIndex
	Status          *StatusRegistry
	Metrics         *metrics.Manager
	NewRemoteClient func(apiKey string) RemoteAPI

	RecentWindow   time.Duration
	RetryAttempts  int
	RetryBackoff   time.Duration
	DeletionPolicy DeletionPolicy
}

func NewEngine(params NewEngineParams) *Engine {
	if params.RetryAttempts < 1 {
		params.RetryAttempts = 1
	}
	if params.RecentWindow <= 0 {
		params.RecentWindow = 30 * 24 * time.Hour
	}
	if params.DeletionPolicy == "" {
		params.DeletionPolicy = DeletionPolicyIgnore
	}
	return &Engine{
		store:           params.Store,
		resolver:        params.Resolver,
		index:           params.Index,
		status:          params.Status,
		metrics:         params.Metrics,
		newRemoteClient: params.NewRemoteClient,
		recentWindow:    params.RecentWindow,
		retryAttempts:   params.RetryAttempts,
		retryBackoff:    params.RetryBackoff,
		deletionPolicy:  params.DeletionPolicy,
		now:             time.Now,
	}
}

func (e *Engine) Status(userID string) Status {
	return e.status.Get(userID)
}

// Sync runs one sync for the user. Delivery is at-least-once: the watermark
// is set to the run's start time and only after every write for the run has
// been attempted, so a crash mid-run makes the next run re-process the same
// window, which is safe because writes are idempotent by (user_id, remote_id).
func (e *Engine) Sync(ctx context.Context, req Request) (Result, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gymsync.engine.sync")
	defer span.End()
	span.SetAttributes(attribute.String("mode", req.Mode))

	if !e.status.TryStart(req.UserID) {
		return Result{}, ErrSyncInProgress
	}

	e.metrics.GaugeSyncsInFlight.Inc()
	runStart := e.now().UTC()
	defer func() {
		e.metrics.GaugeSyncsInFlight.Dec()
		e.metrics.HistSyncDuration.Observe(time.Since(runStart).Seconds())
	}()

	result, err := e.run(ctx, req, runStart)
	if err != nil {
		log.Errorf("sync failed for user %s: %s", req.UserID, err)
		span.SetAttributes(attribute.String("error", err.Error()))
		e.status.Set(req.UserID, StatusError)
		e.metrics.CounterSyncRuns.WithLabelValues("error").Inc()
		return Result{
			Status:  StatusFailedResult,
			Message: fmt.Sprintf("Sync failed: %s", err),
		}, nil
	}

	e.status.Set(req.UserID, StatusComplete)
	e.metrics.CounterSyncRuns.WithLabelValues("complete").Inc()
	span.SetAttributes(attribute.Int("new.count", result.NewCount))
	span.SetAttributes(attribute.Int("skipped.count", result.SkippedCount))
	return result, nil
}

const (
	StatusCompleteResult = "complete"
	StatusFailedResult   = "error"
)

func (e *Engine) run(ctx context.Context, req Request, runStart time.Time) (Result, error) {
	client := e.newRemoteClient(req.APIKey)

	full, watermark, err := e.chooseStrategy(ctx, req)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("sync user %s: strategy full=%t, watermark=%s", req.UserID, full, watermark.Format(time.RFC3339))

	e.syncTemplates(ctx, client, req.UserID)

	remoteWorkouts, err := e.fetchWorkouts(ctx, client, req, full, watermark, runStart)
	if err != nil {
		return Result{}, err
	}

	records, invalidCount := e.buildRecords(req.UserID, remoteWorkouts)

	remoteIDs := make([]string, 0, len(records))
	for _, record := range records {
		remoteIDs = append(remoteIDs, record.RemoteID)
	}
	existing := e.resolver.FindExisting(ctx, req.UserID, remoteIDs)

	var newRecords []workouts.LocalWorkoutRecord
	for _, record := range records {
		if _, dup := existing[record.RemoteID]; dup {
			continue
		}
		newRecords = append(newRecords, record)
	}
	duplicateCount := len(records) - len(newRecords)

	written := e.writeRecords(ctx, newRecords)

	if len(written) > 0 {
		if err := e.index.IndexWorkoutHistory(ctx, written); err != nil {
			log.Errorf("failed to index %d workouts for user %s: %s", len(written), req.UserID, err)
			e.metrics.CounterIndexFailures.Inc()
		}
	}

	if err := e.store.SetWatermark(ctx, req.UserID, runStart); err != nil {
		return Result{}, fmt.Errorf("set watermark: %w", err)
	}

	e.metrics.CounterWorkoutsSynced.Add(float64(len(written)))
	e.metrics.CounterWorkoutsSkipped.Add(float64(duplicateCount))

	log.Infof(
		"sync complete for user %s: %d new, %d duplicates skipped, %d invalid skipped",
		req.UserID, len(written), duplicateCount, invalidCount,
	)

	return Result{
		Status:       StatusCompleteResult,
		NewCount:     len(written),
		SkippedCount: duplicateCount + invalidCount,
		Message:      "Sync complete.",
	}, nil
}

// chooseStrategy decides between a full and an incremental run. Full is
// forced by an explicit request, a demo account, or a user that has never
// synced; everything else goes incremental from the watermark.
func (e *Engine) chooseStrategy(ctx context.Context, req Request) (full bool, watermark time.Time, err error) {
	if req.Mode == ModeFull {
		return true, time.Time{}, nil
	}
	if strings.HasPrefix(req.APIKey, demoKeyPrefix) {
		log.Debugf("user %s uses a demo account, forcing full sync", req.UserID)
		return true, time.Time{}, nil
	}

	watermark, err = e.store.GetWatermark(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, workouts.ErrWatermarkNotFound) {
			return true, time.Time{}, nil
		}
		return false, time.Time{}, fmt.Errorf("get watermark: %w", err)
	}
	return false, watermark, nil
}

// syncTemplates refreshes the exercise template catalog and projects it into
// the search index. Failures here are contained: a stale catalog must not
// abort the workout sync.
func (e *Engine) syncTemplates(ctx context.Context, client RemoteAPI, userID string) {
	var templates []hevy.ExerciseTemplate
	err := e.withRetry(ctx, "fetch exercise templates", func() error {
		var ferr error
		templates, ferr = client.ExerciseTemplates(ctx)
		return ferr
	})
	if err != nil {
		log.Errorf("failed to fetch exercise templates for user %s: %s", userID, err)
		return
	}
	if len(templates) == 0 {
		return
	}

	var base, custom []hevy.ExerciseTemplate
	for _, template := range templates {
		if template.IsCustom {
			custom = append(custom, template)
		} else {
			base = append(base, template)
		}
	}

	saved, err := e.store.UpsertTemplates(ctx, base, nil)
	if err != nil {
		log.Errorf("failed to store %d base templates: %s", len(base), err)
	}
	if len(custom) > 0 {
		customSaved, err := e.store.UpsertTemplates(ctx, custom, &userID)
		if err != nil {
			log.Errorf("failed to store %d custom templates for user %s: %s", len(custom), userID, err)
		}
		saved += customSaved
	}
	e.metrics.CounterTemplatesSynced.Add(float64(saved))

	if err := e.index.IndexExercises(ctx, templates); err != nil {
		log.Errorf("failed to index %d exercise templates: %s", len(templates), err)
		e.metrics.CounterIndexFailures.Inc()
	}
}

func (e *Engine) fetchWorkouts(
	ctx context.Context,
	client RemoteAPI,
	req Request,
	full bool,
	watermark time.Time,
	runStart time.Time,
) ([]hevy.Workout, error) {
	if full {
		from := time.Unix(0, 0).UTC()
		if req.Mode == ModeRecent {
			from = runStart.Add(-e.recentWindow)
		}
		var remoteWorkouts []hevy.Workout
		err := e.withRetry(ctx, "fetch workouts", func() error {
			var ferr error
			remoteWorkouts, ferr = client.Workouts(ctx, from, runStart)
			return ferr
		})
		if err != nil {
			return nil, fmt.Errorf("fetch workouts: %w", err)
		}
		return remoteWorkouts, nil
	}

	var events []hevy.WorkoutEvent
	err := e.withRetry(ctx, "fetch workout events", func() error {
		var ferr error
		events, ferr = client.WorkoutEvents(ctx, watermark)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch workout events: %w", err)
	}

	// the event stream gives identity and kind only, so full payloads are
	// fetched per distinct changed id
	seen := make(map[string]struct{})
	var changedIDs []string
	for _, event := range events {
		switch event.Type {
		case hevy.EventCreated, hevy.EventUpdated:
			if _, dup := seen[event.WorkoutID]; dup {
				continue
			}
			seen[event.WorkoutID] = struct{}{}
			changedIDs = append(changedIDs, event.WorkoutID)
		case hevy.EventDeleted:
			e.handleDeletedEvent(ctx, req.UserID, event)
		default:
			log.Warnf("unknown workout event type %q for workout %s", event.Type, event.WorkoutID)
		}
	}

	var remoteWorkouts []hevy.Workout
	for _, workoutID := range changedIDs {
		var workout *hevy.Workout
		err := e.withRetry(ctx, "fetch workout details", func() error {
			var ferr error
			workout, ferr = client.WorkoutDetails(ctx, workoutID)
			return ferr
		})
		if err != nil {
			if errors.Is(err, hevy.ErrUnauthorized) {
				return nil, fmt.Errorf("fetch workout %s: %w", workoutID, err)
			}
			if errors.Is(err, hevy.ErrNotFound) {
				log.Warnf("workout %s referenced by an event no longer exists, skipping", workoutID)
				continue
			}
			log.Errorf("failed to fetch workout %s, skipping: %s", workoutID, err)
			continue
		}
		remoteWorkouts = append(remoteWorkouts, *workout)
	}
	return remoteWorkouts, nil
}

func (e *Engine) handleDeletedEvent(ctx context.Context, userID string, event hevy.WorkoutEvent) {
	switch e.deletionPolicy {
	case DeletionPolicySoftDelete:
		if err := e.store.MarkDeleted(ctx, userID, event.WorkoutID); err != nil {
			if errors.Is(err, workouts.ErrWorkoutNotFound) {
				log.Debugf("deleted workout %s has no local record", event.WorkoutID)
				return
			}
			log.Errorf("failed to soft-delete workout %s: %s", event.WorkoutID, err)
		}
	case DeletionPolicyHardDelete:
		if err := e.store.Delete(ctx, userID, event.WorkoutID); err != nil {
			if errors.Is(err, workouts.ErrWorkoutNotFound) {
				log.Debugf("deleted workout %s has no local record", event.WorkoutID)
				return
			}
			log.Errorf("failed to delete workout %s: %s", event.WorkoutID, err)
		}
	default:
		log.Infof("workout %s deleted remotely at %s, keeping local record", event.WorkoutID, event.OccurredAt)
	}
}

func (e *Engine) buildRecords(userID string, remoteWorkouts []hevy.Workout) (records []workouts.LocalWorkoutRecord, invalidCount int) {
	for _, workout := range remoteWorkouts {
		record, err := workouts.NewRecordFromRemote(userID, workout)
		if err != nil {
			log.Warnf("skipping invalid workout %q: %s", workout.ID, err)
			e.metrics.CounterInvalidRecords.Inc()
			invalidCount++
			continue
		}
		records = append(records, record)
	}
	return records, invalidCount
}

// writeRecords tries one batch write first, then retries exactly the records
// the batch did not persist one by one. Both stages are best effort: the run
// keeps whatever subset could be written.
func (e *Engine) writeRecords(ctx context.Context, records []workouts.LocalWorkoutRecord) []workouts.LocalWorkoutRecord {
	if len(records) == 0 {
		return nil
	}

	saved, err := e.store.BatchUpsert(ctx, records)
	savedSet := make(map[string]struct{}, len(saved))
	for _, localID := range saved {
		savedSet[localID] = struct{}{}
	}

	if err != nil {
		log.Errorf("batch upsert saved %d of %d records, retrying the rest individually: %s", len(saved), len(records), err)
		for _, record := range records {
			if _, ok := savedSet[record.LocalID]; ok {
				continue
			}
			if _, uerr := e.store.Upsert(ctx, record); uerr != nil {
				log.Errorf("failed to upsert workout %s: %s", record.RemoteID, uerr)
				continue
			}
			savedSet[record.LocalID] = struct{}{}
		}
	}

	var written []workouts.LocalWorkoutRecord
	for _, record := range records {
		if _, ok := savedSet[record.LocalID]; ok {
			written = append(written, record)
		}
	}
	return written
}

func (e *Engine) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= e.retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if errors.Is(err, hevy.ErrUnauthorized) {
			return err
		}
		if attempt == e.retryAttempts {
			break
		}
		backoff := time.Duration(attempt) * e.retryBackoff
		log.Warnf("%s attempt %d/%d failed, retrying in %s: %s", op, attempt, e.retryAttempts, backoff, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
