package workouts

import (
	"errors"
	"fmt"
	"time"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/hevy"
)

// ErrInvalidRecord marks a remote workout that cannot become a local record:
// a required field is missing or a set violates the one-measurement-kind
// invariant. Such records are skipped and counted, never written.
var ErrInvalidRecord = errors.New("invalid workout record")

// LocalWorkoutRecord is the persisted form of a remote workout. The
// (UserID, RemoteID) pair is unique in the primary store; LocalID is derived
// deterministically from RemoteID so re-ingesting the same remote workout is
// idempotent even without the duplicate resolver.
type LocalWorkoutRecord struct {
	LocalID         string          `json:"localId"`
	UserID          string          `json:"userId"`
	RemoteID        string          `json:"remoteId"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	StartTime       string          `json:"startTime"`
	EndTime         string          `json:"endTime"`
	Exercises       []hevy.Exercise `json:"exercises"`
	ExerciseCount   int             `json:"exerciseCount"`
	DurationMinutes int             `json:"durationMinutes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
}

// LocalID derives the deterministic primary-store identifier for a remote
// workout id.
func LocalID(remoteID string) string {
	return "workout_" + remoteID
}

// NewRecordFromRemote validates a remote workout and builds its local record
// draft. CreatedAt/UpdatedAt are left for the store to assign.
func NewRecordFromRemote(userID string, w hevy.Workout) (LocalWorkoutRecord, error) {
	if w.ID == "" {
		return LocalWorkoutRecord{}, fmt.Errorf("%w: missing remote id", ErrInvalidRecord)
	}
	if w.Title == "" {
		return LocalWorkoutRecord{}, fmt.Errorf("%w: missing title (remote id %s)", ErrInvalidRecord, w.ID)
	}
	if len(w.Exercises) == 0 {
		return LocalWorkoutRecord{}, fmt.Errorf("%w: no exercises (remote id %s)", ErrInvalidRecord, w.ID)
	}

	for _, exercise := range w.Exercises {
		for _, set := range exercise.Sets {
			if _, err := set.Measurement(); err != nil {
				return LocalWorkoutRecord{}, fmt.Errorf(
					"%w: exercise %q set %d: %s",
					ErrInvalidRecord, exercise.Title, set.Index, err,
				)
			}
		}
	}

	return LocalWorkoutRecord{
		LocalID:         LocalID(w.ID),
		UserID:          userID,
		RemoteID:        w.ID,
		Title:           w.Title,
		Description:     w.Description,
		StartTime:       w.StartTime,
		EndTime:         w.EndTime,
		Exercises:       w.Exercises,
		ExerciseCount:   len(w.Exercises),
		DurationMinutes: durationMinutes(w.StartTime, w.EndTime),
	}, nil
}

// durationMinutes derives the workout duration from the remote timestamp
// strings; unparseable or inverted ranges yield zero rather than an error,
// duration is display data, not an invariant.
func durationMinutes(startTime, endTime string) int {
	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return 0
	}
	end, err := time.Parse(time.RFC3339, endTime)
	if err != nil {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
