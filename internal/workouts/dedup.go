package workouts

import (
	"context"
	"errors"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=dedup_mocks_test.go -package=workouts_test

type dedupStore interface {
	FindExistingRemoteIDs(ctx context.Context, userID string, remoteIDs []string) (map[string]struct{}, error)
	GetByRemoteID(ctx context.Context, userID, remoteID string) (*LocalWorkoutRecord, error)
}

// Resolver determines which remote workout ids already have local records.
// It is an explicit two-stage strategy: one batched index lookup, then a
// per-id scan if the batched stage fails. Each stage is independently
// exercised by tests; the composition never reports an id that is not in the
// input and never aborts the whole batch for one bad id.
type Resolver struct {
	store dedupStore
}

func NewResolver(store dedupStore) *Resolver {
	return &Resolver{
		store: store,
	}
}

// FindExisting returns the subset of remoteIDs that exist locally for the
// user. The returned set is best-effort on the degraded path: an id whose
// individual check fails is treated as new, which is safe because writes are
// idempotent on the remote-id-derived key.
func (r *Resolver) FindExisting(ctx context.Context, userID string, remoteIDs []string) map[string]struct{} {
	ctx, span := tracing.GlobalTracer.Start(ctx, "workouts.dedup.findExisting")
	defer span.End()
	span.SetAttributes(attribute.Int("remote.ids.count", len(remoteIDs)))

	existing, err := r.BatchedLookup(ctx, userID, remoteIDs)
	if err == nil {
		span.SetAttributes(attribute.Bool("fallback", false))
		return existing
	}

	log.Errorf("batched existing-workouts lookup failed, falling back to per-id checks: %s", err)
	span.SetAttributes(attribute.Bool("fallback", true))

	return r.PerIDLookup(ctx, userID, remoteIDs)
}

// BatchedLookup is the primary stage: one round trip over the remote_id
// index.
func (r *Resolver) BatchedLookup(ctx context.Context, userID string, remoteIDs []string) (map[string]struct{}, error) {
	return r.store.FindExistingRemoteIDs(ctx, userID, remoteIDs)
}

// PerIDLookup is the fallback stage: one existence check per id, logging and
// skipping individual failures so one bad id cannot block dedup of the rest.
func (r *Resolver) PerIDLookup(ctx context.Context, userID string, remoteIDs []string) map[string]struct{} {
	existing := make(map[string]struct{})
	for _, remoteID := range remoteIDs {
		_, err := r.store.GetByRemoteID(ctx, userID, remoteID)
		switch {
		case err == nil:
			existing[remoteID] = struct{}{}
		case errors.Is(err, ErrWorkoutNotFound):
			// genuinely new
		default:
			log.Errorf("existence check for workout %s failed: %s", remoteID, err)
		}
	}
	return existing
}
