package scoring

import (
	"github.com/wize-house/api-go/clock"
	"github.com/wize-house/api-go/models"
)

// Result carries the updated aggregate for one recorded activity.
type Result struct {
	Points        int `json:"points"`
	Streak        int `json:"streak"`
	PointsAwarded int `json:"points_awarded"`
}

// ApplyActivity computes the aggregate that results from recording an activity
// of newType on dateKey against the existing history. The history must be the
// ledger as stored, before the new record is inserted, so the new activity
// never counts against itself.
//
// One point per (type, dateKey) pair: a second book summary on the same day
// awards nothing, a different type the same day awards its own point.
//
// The streak counts consecutive civil days with at least one activity of any
// type. It moves at most once per day: if something was already logged today
// it stays put, if the chain reaches back to yesterday it grows by one, and
// otherwise today starts a fresh streak of 1 (a one-day gap and a month-long
// gap reset the same way).
func ApplyActivity(points, streak int, history []models.Activity, newType, dateKey, today, yesterday string) Result {
	awarded := 1
	for _, a := range history {
		if a.Type == newType && a.DateKey == dateKey {
			awarded = 0
			break
		}
	}

	hasToday := false
	hasYesterday := false
	for _, a := range history {
		if a.DateKey == today {
			hasToday = true
		}
		if a.DateKey == yesterday {
			hasYesterday = true
		}
	}

	newStreak := streak
	if !hasToday {
		if hasYesterday {
			newStreak = streak + 1
		} else {
			newStreak = 1
		}
	}

	return Result{
		Points:        points + awarded,
		Streak:        newStreak,
		PointsAwarded: awarded,
	}
}

// Recompute derives the aggregate from scratch out of the ledger. It is the
// reconciliation backstop for the degraded state where an activity was saved
// but the aggregate write failed: points become the number of distinct
// (type, dateKey) pairs, the streak the run of consecutive days ending at the
// most recent active day.
func Recompute(history []models.Activity) (points, streak int) {
	seen := make(map[[2]string]bool, len(history))
	days := make(map[string]bool, len(history))
	latest := ""
	for _, a := range history {
		pair := [2]string{a.Type, a.DateKey}
		if !seen[pair] {
			seen[pair] = true
			points++
		}
		days[a.DateKey] = true
		if a.DateKey > latest {
			latest = a.DateKey
		}
	}

	for day := latest; days[day]; {
		streak++
		prev, err := clock.PrevDay(day)
		if err != nil {
			break
		}
		day = prev
	}
	return points, streak
}
