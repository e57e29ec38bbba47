package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/hevy"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"
	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/workouts"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	exerciseKeyPrefix  = "exercise::"
	exerciseIDsSetKey  = "exercise-ids"
	historyKeyPrefix   = "workout-history::"
	historyIDsSetKeyFn = "workout-history-ids::%s"
)

// raw muscle group names from the remote service, folded into the coarse
// groups users actually search by
var muscleGroupMapping = map[string]string{
	"upper_back":  "back",
	"lower_back":  "back",
	"middle_back": "back",
	"lats":        "back",
	"traps":       "back",
	"chest":       "chest",
	"pectorals":   "chest",
	"shoulders":   "shoulders",
	"deltoids":    "shoulders",
	"arms":        "arms",
	"biceps":      "arms",
	"triceps":     "arms",
	"forearms":    "arms",
	"legs":        "legs",
	"quadriceps":  "legs",
	"hamstrings":  "legs",
	"calves":      "legs",
	"glutes":      "legs",
	"abdominals":  "core",
	"abs":         "core",
	"core":        "core",
	"cardio":      "cardio",
	"full_body":   "full_body",
}

type IndexedExercise struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MuscleGroups []string  `json:"muscleGroups"`
	Equipment    string    `json:"equipment,omitempty"`
	IsCustom     bool      `json:"isCustom"`
	Content      string    `json:"content"`
	Embedding    []float32 `json:"embedding"`
}

type IndexedWorkout struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	ExerciseCount   int       `json:"exerciseCount"`
	Content         string    `json:"content"`
	Embedding       []float32 `json:"embedding"`
}

type Hit struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Index is the projected semantic index over exercises and workout history.
// It is derived and rebuildable: every write overwrites by natural key, the
// primary store stays authoritative, and callers treat failures here as
// non-fatal.
type Index struct {
	rdb      *redis.Client
	embedder Embedder
}

func NewIndex(rdb *redis.Client, embedder Embedder) *Index {
	return &Index{
		rdb:      rdb,
		embedder: embedder,
	}
}

// IndexExercises projects exercise templates into the index, overwriting any
// previous entry with the same template id.
func (i *Index) IndexExercises(ctx context.Context, templates []hevy.ExerciseTemplate) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "search.index.exercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("templates.count", len(templates)))

	if len(templates) == 0 {
		return nil
	}

	docs := make([]IndexedExercise, 0, len(templates))
	contents := make([]string, 0, len(templates))
	for _, template := range templates {
		doc := IndexedExercise{
			ID:           template.ID,
			Title:        template.Title,
			MuscleGroups: normalizedMuscleGroups(template),
			Equipment:    template.Equipment,
			IsCustom:     template.IsCustom,
		}
		doc.Content = fmt.Sprintf(
			"Exercise: %s - Muscle groups: %s - Equipment: %s",
			doc.Title, strings.Join(doc.MuscleGroups, ", "), equipmentOrNone(doc.Equipment),
		)
		docs = append(docs, doc)
		contents = append(contents, doc.Content)
	}

	vectors, err := i.embedder.Embed(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed exercises: %w", err)
	}

	pipe := i.rdb.Pipeline()
	for idx := range docs {
		docs[idx].Embedding = vectors[idx]
		docBytes, merr := json.Marshal(docs[idx])
		if merr != nil {
			log.Errorf("failed to marshal indexed exercise %s: %s", docs[idx].ID, merr)
			continue
		}
		pipe.Set(ctx, exerciseKeyPrefix+docs[idx].ID, docBytes, 0)
		pipe.SAdd(ctx, exerciseIDsSetKey, docs[idx].ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write exercise index entries: %w", err)
	}

	log.Debugf("indexed %d exercise templates", len(docs))
	return nil
}

// IndexWorkoutHistory projects workout records into the index, keyed by the
// same remote-id-derived identifier the primary store uses, so re-indexing
// overwrites instead of duplicating.
func (i *Index) IndexWorkoutHistory(ctx context.Context, records []workouts.LocalWorkoutRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "search.index.workoutHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("records.count", len(records)))

	if len(records) == 0 {
		return nil
	}

	docs := make([]IndexedWorkout, 0, len(records))
	contents := make([]string, 0, len(records))
	for _, record := range records {
		doc := IndexedWorkout{
			ID:              record.LocalID,
			UserID:          record.UserID,
			Title:           record.Title,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			DurationMinutes: record.DurationMinutes,
			ExerciseCount:   record.ExerciseCount,
			Content:         workoutContent(record),
		}
		docs = append(docs, doc)
		contents = append(contents, doc.Content)
	}

	vectors, err := i.embedder.Embed(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed workout history: %w", err)
	}

	pipe := i.rdb.Pipeline()
	for idx := range docs {
		docs[idx].Embedding = vectors[idx]
		docBytes, merr := json.Marshal(docs[idx])
		if merr != nil {
			log.Errorf("failed to marshal indexed workout %s: %s", docs[idx].ID, merr)
			continue
		}
		pipe.Set(ctx, historyKeyPrefix+docs[idx].ID, docBytes, 0)
		pipe.SAdd(ctx, fmt.Sprintf(historyIDsSetKeyFn, docs[idx].UserID), docs[idx].ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write workout index entries: %w", err)
	}

	log.Debugf("indexed %d workouts", len(docs))
	return nil
}

// SearchExercises returns up to limit exercise templates ranked by cosine
// similarity to the query.
func (i *Index) SearchExercises(ctx context.Context, query string, limit int) (_ []Hit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "search.index.searchExercises")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids, err := i.rdb.SMembers(ctx, exerciseIDsSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read exercise ids: %w", err)
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, exerciseKeyPrefix+id)
	}

	return i.search(ctx, query, keys, limit, func(docBytes []byte) (string, string, []float32, bool) {
		var doc IndexedExercise
		if err := json.Unmarshal(docBytes, &doc); err != nil {
			log.Errorf("failed to unmarshal indexed exercise: %s", err)
			return "", "", nil, false
		}
		return doc.ID, doc.Content, doc.Embedding, true
	})
}

// SearchWorkoutHistory returns up to limit of the user's workouts ranked by
// cosine similarity to the query.
func (i *Index) SearchWorkoutHistory(ctx context.Context, userID, query string, limit int) (_ []Hit, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "search.index.searchWorkoutHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	ids, err := i.rdb.SMembers(ctx, fmt.Sprintf(historyIDsSetKeyFn, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read workout history ids: %w", err)
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, historyKeyPrefix+id)
	}

	return i.search(ctx, query, keys, limit, func(docBytes []byte) (string, string, []float32, bool) {
		var doc IndexedWorkout
		if err := json.Unmarshal(docBytes, &doc); err != nil {
			log.Errorf("failed to unmarshal indexed workout: %s", err)
			return "", "", nil, false
		}
		return doc.ID, doc.Content, doc.Embedding, true
	})
}

func (i *Index) search(
	ctx context.Context,
	query string,
	keys []string,
	limit int,
	decode func([]byte) (id, content string, embedding []float32, ok bool),
) ([]Hit, error) {
	if len(keys) == 0 {
		return []Hit{}, nil
	}

	queryVectors, err := i.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVector := queryVectors[0]

	docValues, err := i.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read index entries: %w", err)
	}

	var hits []Hit
	for _, value := range docValues {
		docString, ok := value.(string)
		if !ok {
			continue
		}
		id, content, embedding, ok := decode([]byte(docString))
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			ID:      id,
			Content: content,
			Score:   cosineSimilarity(queryVector, embedding),
		})
	}

	sort.Slice(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	if hits == nil {
		hits = []Hit{}
	}
	return hits, nil
}

// workoutContent flattens a workout into the searchable text form, one
// exercise with its sets per segment.
func workoutContent(record workouts.LocalWorkoutRecord) string {
	var exercisesInfo []string
	for _, exercise := range record.Exercises {
		var setsInfo []string
		for _, set := range exercise.Sets {
			setsInfo = append(setsInfo, setInfo(set))
		}
		info := fmt.Sprintf("%s: %s", exercise.Title, strings.Join(setsInfo, " | "))
		if exercise.Notes != "" {
			info += fmt.Sprintf(" [Notes: %s]", exercise.Notes)
		}
		exercisesInfo = append(exercisesInfo, info)
	}

	return fmt.Sprintf(
		"Workout: %s - Date: %s - Duration: %d minutes - Exercises: %s",
		record.Title, record.StartTime, record.DurationMinutes,
		strings.Join(exercisesInfo, " | "),
	)
}

func setInfo(set hevy.Set) string {
	var info string
	switch {
	case set.DurationSeconds != nil:
		info = fmt.Sprintf("%ds", *set.DurationSeconds)
	case set.DistanceMeters != nil:
		info = fmt.Sprintf("%.0fm", *set.DistanceMeters)
	case set.CustomMetric != nil:
		info = fmt.Sprintf("%.0f units", *set.CustomMetric)
	default:
		var weight float64
		var reps int
		if set.WeightKg != nil {
			weight = *set.WeightKg
		}
		if set.Reps != nil {
			reps = *set.Reps
		}
		info = fmt.Sprintf("%.1fkg x %d reps", weight, reps)
	}

	if set.RPE != nil {
		info += fmt.Sprintf(" @ RPE %.1f", *set.RPE)
	}
	return info
}

func normalizedMuscleGroups(template hevy.ExerciseTemplate) []string {
	seen := make(map[string]struct{})
	var groups []string

	addGroup := func(raw string) {
		group, ok := muscleGroupMapping[strings.ToLower(raw)]
		if !ok {
			group = strings.ToLower(raw)
		}
		if group == "" {
			return
		}
		if _, dup := seen[group]; dup {
			return
		}
		seen[group] = struct{}{}
		groups = append(groups, group)
	}

	addGroup(template.PrimaryMuscleGroup)
	for _, secondary := range template.SecondaryMuscleGroups {
		addGroup(secondary)
	}
	return groups
}

func equipmentOrNone(equipment string) string {
	if equipment == "" || equipment == "none" {
		return "none"
	}
	return equipment
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for idx := range a {
		dot += float64(a[idx]) * float64(b[idx])
		normA += float64(a[idx]) * float64(a[idx])
		normB += float64(b[idx]) * float64(b[idx])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
