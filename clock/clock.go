package clock

import "time"

// DayFormat is the canonical date-key layout. Date keys are compared as plain
// strings everywhere else in the codebase.
const DayFormat = "2006-01-02"

// House days roll over at midnight Bangkok time (UTC+7), no matter where the
// client device is. A fixed offset keeps the boundary independent of host
// tzdata and of daylight saving rules.
var bangkok = time.FixedZone("ICT", 7*60*60)

// Clock resolves "today" and "yesterday" in the house calendar. The now
// function is swappable so tests can pin a point in time.
type Clock struct {
	now func() time.Time
}

func New() *Clock {
	return &Clock{now: time.Now}
}

func NewAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Today() string {
	return c.now().In(bangkok).Format(DayFormat)
}

func (c *Clock) Yesterday() string {
	return c.now().In(bangkok).AddDate(0, 0, -1).Format(DayFormat)
}

// PrevDay returns the date key of the civil day before dateKey. It returns an
// error for keys that do not parse as YYYY-MM-DD.
func PrevDay(dateKey string) (string, error) {
	t, err := time.ParseInLocation(DayFormat, dateKey, bangkok)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DayFormat), nil
}

// IsValidKey reports whether s is a well-formed date key.
func IsValidKey(s string) bool {
	_, err := time.ParseInLocation(DayFormat, s, bangkok)
	return err == nil
}
