package hevy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lantzbuilds/formava-ai-trainer-sub000/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// https://api.hevyapp.com/docs/

const (
	workoutsPageSize  = 10 // maximum allowed by the API
	templatesPageSize = 100

	// the page_count field is taken from the first response, but a hard cap
	// protects the pagination loop from a server that reports inconsistent
	// page counts
	maxWorkoutPages  = 1000
	maxTemplatePages = 10

	templateCacheKeyPrefix = "exercise-templates::"
	templateCacheExpire    = 60 * 60 // seconds
)

var (
	// ErrUnauthorized is a non-retryable authentication failure (HTTP 401).
	ErrUnauthorized = errors.New("hevy: invalid or expired api key")
	ErrNotFound     = errors.New("hevy: not found")
)

// APIError is a retryable transport-level failure: any non-2xx response
// other than 401.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hevy: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	templateCache *freecache.Cache
}

// NewClient returns a client bound to one api key. The template cache is
// shared between clients, since a client lives only for a single sync run;
// entries are keyed per api key so users only ever see their own catalog.
func NewClient(baseURL, apiKey string, httpClient *http.Client, templateCache *freecache.Cache) *Client {
	return &Client{
		baseURL:       baseURL,
		apiKey:        apiKey,
		httpClient:    httpClient,
		templateCache: templateCache,
	}
}

// Workouts returns all workouts whose start_time lies within [from, to],
// both ends inclusive. Pagination is transparent; the date filter is applied
// client-side because the API's own filtering is unreliable at page
// boundaries. Comparison is lexicographic over the ISO-8601 strings the API
// returns.
func (c *Client) Workouts(ctx context.Context, from, to time.Time) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.client.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fromStr := from.UTC().Format(time.RFC3339)
	toStr := to.UTC().Format(time.RFC3339)
	span.SetAttributes(attribute.String("from", fromStr))
	span.SetAttributes(attribute.String("to", toStr))

	var all []Workout
	totalPages := -1
	for page := 1; totalPages == -1 || (page <= totalPages && page <= maxWorkoutPages); page++ {
		url := fmt.Sprintf("%s/workouts?page=%d&pageSize=%d", c.baseURL, page, workoutsPageSize)
		respBytes, err := c.get(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("get workouts page %d: %w", page, err)
		}

		var pageResp workoutsPageResponse
		if err := json.Unmarshal(respBytes, &pageResp); err != nil {
			return nil, fmt.Errorf("unmarshal workouts page %d: %w", page, err)
		}

		if totalPages == -1 {
			totalPages = pageResp.PageCount
			if totalPages < 1 {
				totalPages = 1
			}
			log.Debugf("hevy workouts: %d total pages reported", totalPages)
		}

		for _, w := range pageResp.Workouts {
			if w.StartTime >= fromStr && w.StartTime <= toStr {
				all = append(all, w)
			}
		}
		log.Tracef("hevy workouts: collected %d after page %d", len(all), page)
	}

	span.SetAttributes(attribute.Int("workouts.count", len(all)))
	return all, nil
}

// WorkoutEvents returns workout change events that occurred since the given
// time. The event stream carries identity and kind only, not payloads.
func (c *Client) WorkoutEvents(ctx context.Context, since time.Time) (_ []WorkoutEvent, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.client.workoutEvents")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sinceStr := since.UTC().Format(time.RFC3339)
	span.SetAttributes(attribute.String("since", sinceStr))

	url := fmt.Sprintf("%s/workouts/events?since=%s", c.baseURL, sinceStr)
	respBytes, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("get workout events: %w", err)
	}

	var eventsResp workoutEventsResponse
	if err := json.Unmarshal(respBytes, &eventsResp); err != nil {
		return nil, fmt.Errorf("unmarshal workout events: %w", err)
	}

	span.SetAttributes(attribute.Int("events.count", len(eventsResp.Events)))
	return eventsResp.Events, nil
}

// WorkoutDetails returns the full payload of a single workout, or
// ErrNotFound.
func (c *Client) WorkoutDetails(ctx context.Context, workoutID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.client.workoutDetails")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	url := fmt.Sprintf("%s/workouts/%s", c.baseURL, workoutID)
	respBytes, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("get workout %s: %w", workoutID, err)
	}

	workout, err := unmarshalWorkoutPayload(respBytes)
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", workoutID, err)
	}
	return workout, nil
}

// ExerciseTemplates returns all exercise templates, fetching successive
// pages until an empty page, a 404 past the last page, or the page cap.
// The full result is cached for an hour since the template catalog barely
// changes between syncs.
func (c *Client) ExerciseTemplates(ctx context.Context) (_ []ExerciseTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "hevy.client.exerciseTemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(templateCacheKeyPrefix + c.apiKey)
	if cachedBytes, err := c.templateCache.Get(cacheKey); err == nil {
		var templates []ExerciseTemplate
		if err := json.Unmarshal(cachedBytes, &templates); err == nil {
			log.Tracef("hevy exercise templates: %d from cache", len(templates))
			span.SetAttributes(attribute.Bool("from-cache", true))
			return templates, nil
		}
		log.Errorf("failed to unmarshal cached exercise templates: %s", err)
	}

	var all []ExerciseTemplate
	for page := 1; page <= maxTemplatePages; page++ {
		url := fmt.Sprintf("%s/exercise_templates?page=%d&pageSize=%d", c.baseURL, page, templatesPageSize)
		respBytes, err := c.get(ctx, url)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				log.Debugf("hevy exercise templates: page %d not found, stopping", page)
				break
			}
			return nil, fmt.Errorf("get exercise templates page %d: %w", page, err)
		}

		var pageResp exerciseTemplatesPageResponse
		if err := json.Unmarshal(respBytes, &pageResp); err != nil {
			return nil, fmt.Errorf("unmarshal exercise templates page %d: %w", page, err)
		}
		if len(pageResp.ExerciseTemplates) == 0 {
			break
		}
		all = append(all, pageResp.ExerciseTemplates...)
	}

	if allBytes, err := json.Marshal(all); err == nil {
		if err := c.templateCache.Set(cacheKey, allBytes, templateCacheExpire); err != nil {
			log.Errorf("failed to cache exercise templates: %s", err)
		}
	}

	span.SetAttributes(attribute.Int("templates.count", len(all)))
	return all, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		log.Errorf("hevy api returned 401 for %s", url)
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Join(ErrNotFound, &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)})
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBytes)}
	}

	return respBytes, nil
}
