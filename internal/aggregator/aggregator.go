package aggregator

import (
	"sort"
	"time"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

const (
	// Events shorter than this are dropped as noise before clustering
	minEventDurationSeconds = 10

	// Gaps longer than this (but within the merge tolerance) count as breaks
	breakThresholdSeconds = 60
)

// Config holds the aggregation tunables
type Config struct {
	MaxBreakMinutes           int     `koanf:"max_break_minutes" json:"max_break_minutes"`
	MinTitleSimilarity        float64 `koanf:"min_title_similarity" json:"min_title_similarity"`
	MinSessionDurationSeconds int     `koanf:"min_session_duration_seconds" json:"min_session_duration_seconds"`
}

// DefaultConfig returns the default aggregation thresholds
func DefaultConfig() Config {
	return Config{
		MaxBreakMinutes:           5,
		MinTitleSimilarity:        0.65,
		MinSessionDurationSeconds: 120,
	}
}

// accumulator is the single open session under construction during the
// aggregation pass. It is converted to an immutable models.Session by
// finalize once closed.
type accumulator struct {
	userID          string
	processName     string
	windowTitleBase string

	startTime time.Time
	endTime   time.Time

	totalDurationSeconds  int
	activeDurationSeconds int

	eventIDs   models.EventIDList
	eventCount int
	breakCount int
	isPrivate  bool
}

// Aggregate clusters a user's window events into sessions.
//
// Events are stable-sorted by start timestamp; events without an end
// timestamp or shorter than 10 seconds are dropped as noise. A single
// forward pass keeps one open accumulator at a time: a candidate event is
// merged when it has the same process, a sufficiently similar normalized
// title and starts within cfg.MaxBreakMinutes of the accumulator's end.
// Closed accumulators shorter than cfg.MinSessionDurationSeconds are
// discarded.
//
// The caller must partition events by user before calling; the function
// does not validate this. Given the same events and config the output is
// identical run to run.
func Aggregate(events []models.Event, userID string, cfg Config) []models.Session {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampStart.Before(sorted[j].TimestampStart)
	})

	var sessions []models.Session
	var current *accumulator

	for i := range sorted {
		event := &sorted[i]

		// Skip open-ended or too-short events
		if event.TimestampEnd == nil || event.DurationSeconds < minEventDurationSeconds {
			continue
		}

		if current == nil {
			current = openAccumulator(event, userID)
			continue
		}

		if current.accepts(event, cfg) {
			current.merge(event)
		} else {
			if session, ok := current.finalize(cfg); ok {
				sessions = append(sessions, session)
			}
			current = openAccumulator(event, userID)
		}
	}

	if current != nil {
		if session, ok := current.finalize(cfg); ok {
			sessions = append(sessions, session)
		}
	}

	return sessions
}

func openAccumulator(event *models.Event, userID string) *accumulator {
	return &accumulator{
		userID:                userID,
		processName:           event.ProcessName,
		windowTitleBase:       NormalizeTitle(event.WindowTitle),
		startTime:             event.TimestampStart,
		endTime:               *event.TimestampEnd,
		totalDurationSeconds:  event.DurationSeconds,
		activeDurationSeconds: event.DurationSeconds,
		eventIDs:              models.EventIDList{event.ID},
		eventCount:            1,
		isPrivate:             event.IsPrivate,
	}
}

// accepts reports whether the candidate event belongs to the open
// accumulator: same process, similar title (skipped when either
// normalized title is empty) and a gap within the merge tolerance.
func (a *accumulator) accepts(event *models.Event, cfg Config) bool {
	if event.ProcessName != a.processName {
		return false
	}

	normalized := NormalizeTitle(event.WindowTitle)
	if normalized != "" && a.windowTitleBase != "" {
		if Similarity(normalized, a.windowTitleBase) < cfg.MinTitleSimilarity {
			return false
		}
	}

	gapMinutes := event.TimestampStart.Sub(a.endTime).Minutes()
	return gapMinutes <= float64(cfg.MaxBreakMinutes)
}

func (a *accumulator) merge(event *models.Event) {
	gapSeconds := event.TimestampStart.Sub(a.endTime).Seconds()

	a.endTime = *event.TimestampEnd
	a.eventIDs = append(a.eventIDs, event.ID)
	a.eventCount++
	a.activeDurationSeconds += event.DurationSeconds
	a.totalDurationSeconds = int(a.endTime.Sub(a.startTime).Seconds())

	if gapSeconds > breakThresholdSeconds {
		a.breakCount++
	}
}

// finalize converts the accumulator into an immutable session. Sessions
// below the minimum duration are discarded (ok == false).
func (a *accumulator) finalize(cfg Config) (models.Session, bool) {
	if a.totalDurationSeconds < cfg.MinSessionDurationSeconds {
		return models.Session{}, false
	}

	return models.Session{
		UserID:                a.userID,
		ProcessName:           a.processName,
		WindowTitleBase:       a.windowTitleBase,
		StartTime:             a.startTime,
		EndTime:               a.endTime,
		TotalDurationSeconds:  a.totalDurationSeconds,
		ActiveDurationSeconds: a.activeDurationSeconds,
		EventIDs:              a.eventIDs,
		EventCount:            a.eventCount,
		BreakCount:            a.breakCount,
		IsPrivate:             a.isPrivate,
	}, true
}
