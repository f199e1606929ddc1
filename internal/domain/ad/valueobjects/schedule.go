package valueobjects

import (
	"fmt"
	"time"
)

// HourRange is a half-open [From, To) range of UTC hours within a day.
type HourRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Schedule bounds when an ad may serve. All comparisons happen in UTC; the
// timezone is advisory metadata recorded for the advertiser's benefit. Nil
// start or end means unbounded on that side, empty day and hour filters mean
// always on.
type Schedule struct {
	start       *time.Time
	end         *time.Time
	timezone    string
	activeDays  []int
	activeHours []HourRange
}

func NewSchedule(start, end *time.Time, timezone string, activeDays []int, activeHours []HourRange) (Schedule, error) {
	if start != nil && end != nil && !start.Before(*end) {
		return Schedule{}, fmt.Errorf("schedule start must precede end")
	}
	for _, d := range activeDays {
		if d < 0 || d > 6 {
			return Schedule{}, fmt.Errorf("active day %d out of range 0-6", d)
		}
	}
	for _, h := range activeHours {
		if h.From < 0 || h.To > 24 || h.From >= h.To {
			return Schedule{}, fmt.Errorf("active hours %d-%d out of range", h.From, h.To)
		}
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return Schedule{}, fmt.Errorf("unknown timezone %q", timezone)
		}
	}

	return Schedule{
		start:       start,
		end:         end,
		timezone:    timezone,
		activeDays:  append([]int(nil), activeDays...),
		activeHours: append([]HourRange(nil), activeHours...),
	}, nil
}

// IsActiveAt reports whether the schedule allows serving at the instant.
func (s Schedule) IsActiveAt(now time.Time) bool {
	now = now.UTC()

	if s.start != nil && now.Before(*s.start) {
		return false
	}
	if s.end != nil && now.After(*s.end) {
		return false
	}

	if len(s.activeDays) > 0 {
		day := int(now.Weekday())
		found := false
		for _, d := range s.activeDays {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(s.activeHours) > 0 {
		hour := now.Hour()
		found := false
		for _, r := range s.activeHours {
			if hour >= r.From && hour < r.To {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// StartsAfter reports whether the schedule begins strictly after the instant.
func (s Schedule) StartsAfter(now time.Time) bool {
	return s.start != nil && s.start.After(now.UTC())
}

// EndedBy reports whether the schedule window has closed by the instant.
func (s Schedule) EndedBy(now time.Time) bool {
	return s.end != nil && now.UTC().After(*s.end)
}

func (s Schedule) Start() *time.Time {
	return s.start
}

func (s Schedule) End() *time.Time {
	return s.end
}

func (s Schedule) Timezone() string {
	return s.timezone
}

func (s Schedule) ActiveDays() []int {
	return append([]int(nil), s.activeDays...)
}

func (s Schedule) ActiveHours() []HourRange {
	return append([]HourRange(nil), s.activeHours...)
}

// ReconstructSchedule rebuilds a schedule from persistence without validation.
func ReconstructSchedule(start, end *time.Time, timezone string, activeDays []int, activeHours []HourRange) Schedule {
	return Schedule{
		start:       start,
		end:         end,
		timezone:    timezone,
		activeDays:  activeDays,
		activeHours: activeHours,
	}
}
