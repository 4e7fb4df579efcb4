package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wize-house/api-go/models"
)

func act(typ, dateKey string) models.Activity {
	return models.Activity{Type: typ, DateKey: dateKey}
}

func TestFirstActivityEver(t *testing.T) {
	res := ApplyActivity(0, 0, nil, models.ActivityCheckin, "2024-01-01", "2024-01-01", "2023-12-31")
	assert.Equal(t, 1, res.Points)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 1, res.PointsAwarded)
}

func TestSameTypeSameDayAwardsNothing(t *testing.T) {
	history := []models.Activity{act(models.ActivityBook, "2024-01-01")}
	res := ApplyActivity(1, 1, history, models.ActivityBook, "2024-01-01", "2024-01-01", "2023-12-31")
	assert.Equal(t, 1, res.Points, "second book summary the same day must not score")
	assert.Equal(t, 0, res.PointsAwarded)
	assert.Equal(t, 1, res.Streak, "streak already counted today")
}

func TestDifferentTypeSameDayEarnsOwnPoint(t *testing.T) {
	history := []models.Activity{act(models.ActivityCheckin, "2024-01-01")}
	res := ApplyActivity(1, 1, history, models.ActivityBook, "2024-01-01", "2024-01-01", "2023-12-31")
	assert.Equal(t, 2, res.Points)
	assert.Equal(t, 1, res.PointsAwarded)
	assert.Equal(t, 1, res.Streak, "streak moves at most once per day")
}

func TestContinuationFromYesterday(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityCheckin, "2024-01-02"),
		act(models.ActivityCheckin, "2024-01-01"),
	}
	res := ApplyActivity(2, 2, history, models.ActivityClip, "2024-01-03", "2024-01-03", "2024-01-02")
	assert.Equal(t, 3, res.Points)
	assert.Equal(t, 3, res.Streak)
}

func TestGapResetsToOne(t *testing.T) {
	// Active on day D only, next record on D+2.
	history := []models.Activity{act(models.ActivityCheckin, "2024-01-01")}
	res := ApplyActivity(1, 1, history, models.ActivityCheckin, "2024-01-03", "2024-01-03", "2024-01-02")
	assert.Equal(t, 2, res.Points)
	assert.Equal(t, 1, res.Streak, "a missed day collapses the streak to 1, not previous+1")
}

func TestLongGapResetsSameAsShortGap(t *testing.T) {
	history := []models.Activity{act(models.ActivitySale, "2023-11-20")}
	res := ApplyActivity(12, 9, history, models.ActivityCheckin, "2024-01-05", "2024-01-05", "2024-01-04")
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 13, res.Points)
}

func TestStreakNeverMovesTwiceInOneDay(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityCheckin, "2024-01-02"),
		act(models.ActivityBook, "2024-01-01"),
	}
	// Second entry on Jan 2 after the streak already grew to 2 that morning.
	res := ApplyActivity(2, 2, history, models.ActivityCoaching, "2024-01-02", "2024-01-02", "2024-01-01")
	assert.Equal(t, 2, res.Streak)
	assert.Equal(t, 3, res.Points)
}

func TestDateKeyComparisonIsExact(t *testing.T) {
	// Zero-padding differences are treated as different days on purpose.
	history := []models.Activity{act(models.ActivityCheckin, "2024-1-1")}
	res := ApplyActivity(1, 1, history, models.ActivityCheckin, "2024-01-01", "2024-01-01", "2023-12-31")
	assert.Equal(t, 1, res.PointsAwarded)
}

// The walkthrough from the product brief: check-in and book on Jan 1, check-in
// on Jan 2, then a gapped check-in on Jan 5.
func TestAccrualScenario(t *testing.T) {
	var history []models.Activity
	points, streak := 0, 0

	record := func(typ, day, yesterday string) Result {
		res := ApplyActivity(points, streak, history, typ, day, day, yesterday)
		history = append([]models.Activity{act(typ, day)}, history...)
		points, streak = res.Points, res.Streak
		return res
	}

	res := record(models.ActivityCheckin, "2024-01-01", "2023-12-31")
	assert.Equal(t, Result{Points: 1, Streak: 1, PointsAwarded: 1}, res)

	res = record(models.ActivityBook, "2024-01-01", "2023-12-31")
	assert.Equal(t, Result{Points: 2, Streak: 1, PointsAwarded: 1}, res)

	res = record(models.ActivityCheckin, "2024-01-02", "2024-01-01")
	assert.Equal(t, Result{Points: 3, Streak: 2, PointsAwarded: 1}, res)

	res = record(models.ActivityCheckin, "2024-01-05", "2024-01-04")
	assert.Equal(t, Result{Points: 4, Streak: 1, PointsAwarded: 1}, res)
}

func TestPointsNeverDecrease(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityCheckin, "2024-01-01"),
		act(models.ActivityBook, "2024-01-01"),
	}
	points, streak := 2, 1
	types := []string{models.ActivityCheckin, models.ActivityBook, models.ActivityClip, models.ActivityCheckin}
	for _, typ := range types {
		res := ApplyActivity(points, streak, history, typ, "2024-01-02", "2024-01-02", "2024-01-01")
		assert.GreaterOrEqual(t, res.Points, points)
		assert.LessOrEqual(t, res.Streak, streak+1)
		history = append([]models.Activity{act(typ, "2024-01-02")}, history...)
		points, streak = res.Points, res.Streak
	}
}

func TestRecomputeEmptyLedger(t *testing.T) {
	points, streak := Recompute(nil)
	assert.Equal(t, 0, points)
	assert.Equal(t, 0, streak)
}

func TestRecomputeMatchesIncrementalAccrual(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityCheckin, "2024-01-05"),
		act(models.ActivityCheckin, "2024-01-02"),
		act(models.ActivityBook, "2024-01-01"),
		act(models.ActivityCheckin, "2024-01-01"),
	}
	points, streak := Recompute(history)
	assert.Equal(t, 4, points)
	assert.Equal(t, 1, streak, "Jan 5 stands alone")
}

func TestRecomputeCountsRunEndingAtLatestDay(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityBook, "2024-01-03"),
		act(models.ActivityCheckin, "2024-01-03"),
		act(models.ActivityClip, "2024-01-02"),
		act(models.ActivityCheckin, "2024-01-01"),
		act(models.ActivitySale, "2023-12-25"),
	}
	points, streak := Recompute(history)
	assert.Equal(t, 5, points)
	assert.Equal(t, 3, streak)
}

func TestRecomputeDeduplicatesTypePerDay(t *testing.T) {
	history := []models.Activity{
		act(models.ActivityCheckin, "2024-01-01"),
		act(models.ActivityCheckin, "2024-01-01"),
	}
	points, streak := Recompute(history)
	assert.Equal(t, 1, points)
	assert.Equal(t, 1, streak)
}
