package workouts

import "errors"

// DateLayout is the calendar-day format used throughout the progress engine.
const DateLayout = "2006-01-02"

var ErrNothingToDecrement = errors.New("nothing to decrement")

// DayStats holds the per-category completion counts for a single day.
type DayStats struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Progress is the per-user workout bookkeeping record.
//
// Invariants, maintained by Increment/Decrement/Reset:
//   - TotalCompleted == sum of Counts values
//   - DailyStats[d].Total == sum of that day's per-category counts
//   - no count is ever negative
//   - a day entry is removed once its total reaches zero
type Progress struct {
	Counts          map[string]int       `json:"counts"`
	TotalCompleted  int                  `json:"totalCompleted"`
	StreakCount     int                  `json:"streakCount"`
	LastWorkoutDate string               `json:"lastWorkoutDate,omitempty"`
	DailyStats      map[string]*DayStats `json:"dailyStats"`
}

func NewProgress() *Progress {
	return &Progress{
		Counts:     map[string]int{},
		DailyStats: map[string]*DayStats{},
	}
}

// Increment records one completion of the given canonical category on the
// given day, updating the all-time counts, the daily ledger and the streak.
func (p *Progress) Increment(category, today string) {
	if p.Counts == nil {
		p.Counts = map[string]int{}
	}
	if p.DailyStats == nil {
		p.DailyStats = map[string]*DayStats{}
	}

	p.Counts[category]++
	p.TotalCompleted++

	day, ok := p.DailyStats[today]
	if !ok {
		day = &DayStats{Counts: map[string]int{}}
		p.DailyStats[today] = day
	}
	day.Counts[category]++
	day.Total++

	p.StreakCount, p.LastWorkoutDate = NextStreak(p.StreakCount, p.LastWorkoutDate, today)
}

// Decrement undoes one completion of the given canonical category. The
// all-time count must be positive, otherwise ErrNothingToDecrement is
// returned and the record is left untouched. The daily ledger is only
// mirrored when today's entry actually holds that category.
func (p *Progress) Decrement(category, today string) error {
	if p.Counts[category] <= 0 {
		return ErrNothingToDecrement
	}

	p.Counts[category]--
	p.TotalCompleted--

	day, ok := p.DailyStats[today]
	if !ok || day.Counts[category] <= 0 {
		return nil
	}

	day.Counts[category]--
	day.Total--
	if day.Counts[category] == 0 {
		delete(day.Counts, category)
	}

	if day.Total <= 0 {
		delete(p.DailyStats, today)
		// today's only activity was undone
		if p.LastWorkoutDate == today {
			if p.StreakCount > 0 {
				p.StreakCount--
			}
			p.LastWorkoutDate = ""
		}
	}

	return nil
}

// Reset zeroes the counters and the streak. The daily ledger and earned
// badges are deliberately left untouched (badges are achievements, not
// live state).
func (p *Progress) Reset() {
	p.Counts = map[string]int{}
	p.TotalCompleted = 0
	p.StreakCount = 0
	p.LastWorkoutDate = ""
}
