package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/hevy"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrWorkoutIDTaken    = errors.New("workout id stored for another user")
	ErrWatermarkNotFound = errors.New("sync watermark not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const upsertWorkoutSQL = `
	INSERT INTO workout
		(id, user_id, remote_id, title, description, start_time, end_time,
		 exercises, exercise_count, duration_minutes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	ON CONFLICT (user_id, remote_id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		start_time = EXCLUDED.start_time,
		end_time = EXCLUDED.end_time,
		exercises = EXCLUDED.exercises,
		exercise_count = EXCLUDED.exercise_count,
		duration_minutes = EXCLUDED.duration_minutes,
		updated_at = now();`

// BatchUpsert writes all records in one database round trip. Each record is
// upserted independently: a failing record does not roll back its siblings.
// The returned slice holds the local ids that were actually written; the
// error aggregates per-record failures, so callers can retry exactly the
// records missing from saved.
func (r *Repo) BatchUpsert(ctx context.Context, records []LocalWorkoutRecord) (saved []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.batchUpsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("records.count", len(records)))

	if len(records) == 0 {
		return nil, nil
	}

	// records skipped at queue time are excluded from queued, so the exec
	// results below line up with the statements actually sent
	batch := &pgx.Batch{}
	queued := make([]LocalWorkoutRecord, 0, len(records))
	for _, record := range records {
		exercisesJson, merr := json.Marshal(record.Exercises)
		if merr != nil {
			err = multierr.Append(err, fmt.Errorf("marshal exercises for %s: %w", record.RemoteID, merr))
			continue
		}
		batch.Queue(
			upsertWorkoutSQL,
			record.LocalID, record.UserID, record.RemoteID, record.Title, record.Description,
			record.StartTime, record.EndTime, exercisesJson, record.ExerciseCount, record.DurationMinutes,
		)
		queued = append(queued, record)
	}

	results := r.db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close batch results: %w", closeErr))
		}
	}()

	for _, record := range queued {
		if _, execErr := results.Exec(); execErr != nil {
			err = multierr.Append(err, fmt.Errorf("upsert workout %s: %w", record.RemoteID, execErr))
			continue
		}
		saved = append(saved, record.LocalID)
	}

	span.SetAttributes(attribute.Int("records.saved", len(saved)))
	return saved, err
}

// Upsert writes a single record, used as the per-record fallback when the
// batch path fails.
func (r *Repo) Upsert(ctx context.Context, record LocalWorkoutRecord) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("remote.id", record.RemoteID))

	exercisesJson, err := json.Marshal(record.Exercises)
	if err != nil {
		return "", fmt.Errorf("marshal exercises: %w", err)
	}

	if _, err := r.db.Exec(
		ctx,
		upsertWorkoutSQL,
		record.LocalID, record.UserID, record.RemoteID, record.Title, record.Description,
		record.StartTime, record.EndTime, exercisesJson, record.ExerciseCount, record.DurationMinutes,
	); err != nil {
		if pkg.IsUniqueViolationError(err) {
			// the id is derived from the remote id, so this is a record
			// already stored under a different user
			return "", fmt.Errorf("workout %s: %w", record.RemoteID, ErrWorkoutIDTaken)
		}
		return "", err
	}

	return record.LocalID, nil
}

// FindExistingRemoteIDs returns the subset of remoteIDs that already have a
// local record for the user, in a single round trip over the remote_id
// index.
func (r *Repo) FindExistingRemoteIDs(ctx context.Context, userID string, remoteIDs []string) (_ map[string]struct{}, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.findExistingRemoteIds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("remote.ids.count", len(remoteIDs)))

	existing := make(map[string]struct{})
	if len(remoteIDs) == 0 {
		return existing, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT remote_id FROM workout WHERE user_id = $1 AND remote_id = ANY($2);`,
		userID, remoteIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query existing remote ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var remoteID string
		if err := rows.Scan(&remoteID); err != nil {
			return nil, fmt.Errorf("scan remote id: %w", err)
		}
		existing[remoteID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("existing.count", len(existing)))
	return existing, nil
}

// GetByRemoteID returns the local record for one remote workout id, or
// ErrWorkoutNotFound.
func (r *Repo) GetByRemoteID(ctx context.Context, userID, remoteID string) (_ *LocalWorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getByRemoteId")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("remote.id", remoteID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, remote_id, title, description, start_time, end_time,
				exercises, exercise_count, duration_minutes, created_at, updated_at, deleted_at
			FROM workout
			WHERE user_id = $1 AND remote_id = $2;`,
		userID, remoteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records, err := r.rows2records(rows)
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, ErrWorkoutNotFound
	}
	return &records[0], nil
}

// ListRange returns the user's workouts whose start_time falls within
// [from, to], most recent first.
func (r *Repo) ListRange(ctx context.Context, userID, from, to string) (_ []LocalWorkoutRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from))
	span.SetAttributes(attribute.String("to", to))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, remote_id, title, description, start_time, end_time,
				exercises, exercise_count, duration_minutes, created_at, updated_at, deleted_at
			FROM workout
			WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3 AND deleted_at IS NULL
			ORDER BY start_time DESC;`,
		userID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return r.rows2records(rows)
}

// MarkDeleted flags the record without removing it; Delete removes it. Which
// one (if either) runs for a remote deletion event is the engine's policy
// decision, not the store's.
func (r *Repo) MarkDeleted(ctx context.Context, userID, remoteID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.markDeleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("remote.id", remoteID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout SET deleted_at = now(), updated_at = now()
			WHERE user_id = $1 AND remote_id = $2 AND deleted_at IS NULL;`,
		userID, remoteID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, remoteID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("remote.id", remoteID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE user_id = $1 AND remote_id = $2;`,
		userID, remoteID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// GetWatermark returns the user's last successful sync time, or
// ErrWatermarkNotFound for a user that has never synced.
func (r *Repo) GetWatermark(ctx context.Context, userID string) (_ time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getWatermark")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT last_synced_at FROM user_sync_state WHERE user_id = $1;`,
		userID,
	)
	if err != nil {
		return time.Time{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return time.Time{}, err
		}
		return time.Time{}, ErrWatermarkNotFound
	}

	var lastSyncedAt time.Time
	if err := rows.Scan(&lastSyncedAt); err != nil {
		return time.Time{}, fmt.Errorf("scan watermark: %w", err)
	}
	return lastSyncedAt, nil
}

// SetWatermark advances the user's watermark. GREATEST keeps the watermark
// monotonic: a run that started before a concurrent later run finished can
// never move it backward.
func (r *Repo) SetWatermark(ctx context.Context, userID string, ts time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.setWatermark")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("watermark", ts.UTC().Format(time.RFC3339)))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_sync_state (user_id, last_synced_at)
			VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET
				last_synced_at = GREATEST(user_sync_state.last_synced_at, EXCLUDED.last_synced_at);`,
		userID, ts.UTC(),
	)
	return err
}

// UpsertTemplates stores exercise templates in one batch; base templates
// carry a NULL user id, custom ones the owning user's.
func (r *Repo) UpsertTemplates(ctx context.Context, templates []hevy.ExerciseTemplate, userID *string) (saved int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsertTemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("templates.count", len(templates)))

	if len(templates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, template := range templates {
		secondaryJson, merr := json.Marshal(template.SecondaryMuscleGroups)
		if merr != nil {
			err = multierr.Append(err, fmt.Errorf("marshal muscle groups for %s: %w", template.ID, merr))
			continue
		}
		batch.Queue(
			`INSERT INTO exercise_template
				(id, title, primary_muscle_group, secondary_muscle_groups, equipment, is_custom, user_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				primary_muscle_group = EXCLUDED.primary_muscle_group,
				secondary_muscle_groups = EXCLUDED.secondary_muscle_groups,
				equipment = EXCLUDED.equipment,
				is_custom = EXCLUDED.is_custom,
				user_id = EXCLUDED.user_id,
				updated_at = now();`,
			template.ID, template.Title, template.PrimaryMuscleGroup, secondaryJson,
			template.Equipment, template.IsCustom, userID,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer func() {
		if closeErr := results.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close batch results: %w", closeErr))
		}
	}()

	for _, template := range templates {
		if _, execErr := results.Exec(); execErr != nil {
			err = multierr.Append(err, fmt.Errorf("upsert template %s: %w", template.ID, execErr))
			continue
		}
		saved++
	}

	return saved, err
}

func (r *Repo) rows2records(rows pgx.Rows) ([]LocalWorkoutRecord, error) {
	var records []LocalWorkoutRecord
	for rows.Next() {
		var record LocalWorkoutRecord
		var description *string
		var exercisesBytes []byte
		if err := rows.Scan(
			&record.LocalID, &record.UserID, &record.RemoteID, &record.Title, &description,
			&record.StartTime, &record.EndTime, &exercisesBytes,
			&record.ExerciseCount, &record.DurationMinutes,
			&record.CreatedAt, &record.UpdatedAt, &record.DeletedAt,
		); err != nil {
			return nil, err
		}

		if description != nil {
			record.Description = *description
		}
		if len(exercisesBytes) > 0 {
			if err := json.Unmarshal(exercisesBytes, &record.Exercises); err != nil {
				log.Errorf("failed to unmarshal exercises for workout %s: %s", record.RemoteID, err)
			}
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if records == nil {
		records = make([]LocalWorkoutRecord, 0)
	}
	return records, nil
}
