package hevy

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Remote timestamps are kept as the ISO-8601 strings the API returns.
// Date filtering compares them lexicographically, so parsing is deferred
// to the point where a real time.Time is actually needed.

type Set struct {
	Index           int      `json:"index"`
	Type            string   `json:"type"`
	WeightKg        *float64 `json:"weight_kg"`
	Reps            *int     `json:"reps"`
	DistanceMeters  *float64 `json:"distance_meters"`
	DurationSeconds *int     `json:"duration_seconds"`
	CustomMetric    *float64 `json:"custom_metric"`
	RPE             *float64 `json:"rpe"`
}

type MeasurementKind string

const (
	MeasurementWeightReps   MeasurementKind = "weight_reps"
	MeasurementDuration     MeasurementKind = "duration"
	MeasurementDistance     MeasurementKind = "distance"
	MeasurementCustomMetric MeasurementKind = "custom_metric"
)

var ErrAmbiguousMeasurement = errors.New("set has no or more than one measurement kind")

// Measurement returns the single measurement kind populated on the set.
// Exactly one kind must be present; sets violating that are rejected on
// ingestion rather than silently interpreted.
func (s Set) Measurement() (MeasurementKind, error) {
	var kinds []MeasurementKind
	if s.WeightKg != nil || s.Reps != nil {
		kinds = append(kinds, MeasurementWeightReps)
	}
	if s.DurationSeconds != nil {
		kinds = append(kinds, MeasurementDuration)
	}
	if s.DistanceMeters != nil {
		kinds = append(kinds, MeasurementDistance)
	}
	if s.CustomMetric != nil {
		kinds = append(kinds, MeasurementCustomMetric)
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("%w: %d kinds populated", ErrAmbiguousMeasurement, len(kinds))
	}
	return kinds[0], nil
}

type Exercise struct {
	Index      int    `json:"index"`
	Title      string `json:"title"`
	Notes      string `json:"notes,omitempty"`
	TemplateID string `json:"exercise_template_id"`
	Sets       []Set  `json:"sets"`
}

type Workout struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	UpdatedAt   string     `json:"updated_at,omitempty"`
	CreatedAt   string     `json:"created_at,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

type WorkoutEvent struct {
	WorkoutID  string    `json:"workout_id"`
	Type       EventType `json:"type"`
	OccurredAt string    `json:"occurred_at"`
}

type ExerciseTemplate struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	PrimaryMuscleGroup    string   `json:"primary_muscle_group"`
	SecondaryMuscleGroups []string `json:"secondary_muscle_groups"`
	Equipment             string   `json:"equipment"`
	IsCustom              bool     `json:"is_custom"`
}

type workoutsPageResponse struct {
	Workouts  []Workout `json:"workouts"`
	PageCount int       `json:"page_count"`
}

type workoutEventsResponse struct {
	Events []WorkoutEvent `json:"events"`
}

type exerciseTemplatesPageResponse struct {
	ExerciseTemplates []ExerciseTemplate `json:"exercise_templates"`
	PageCount         int                `json:"page_count"`
}

// unmarshalWorkoutPayload normalizes the three response shapes the API uses
// for a single workout: a bare object, an object nested under "workout", and
// a list-of-one nested under "workout" (creation responses). Isolating the
// inconsistency here keeps the rest of the client oblivious to it.
func unmarshalWorkoutPayload(data []byte) (*Workout, error) {
	var envelope struct {
		Workout json.RawMessage `json:"workout"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Workout) > 0 {
		data = envelope.Workout
	}

	// list-of-one shape
	if len(data) > 0 && data[0] == '[' {
		var workouts []Workout
		if err := json.Unmarshal(data, &workouts); err != nil {
			return nil, fmt.Errorf("unmarshal workout list payload: %w", err)
		}
		if len(workouts) == 0 {
			return nil, errors.New("empty workout list payload")
		}
		return &workouts[0], nil
	}

	var workout Workout
	if err := json.Unmarshal(data, &workout); err != nil {
		return nil, fmt.Errorf("unmarshal workout payload: %w", err)
	}
	return &workout, nil
}
