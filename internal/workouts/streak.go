package workouts

import "time"

// NextStreak is the streak transition function: given the current streak
// state and today's date, it returns the new streak state.
//
//   - no previous workout: the streak starts at 1
//   - same day: multiple completions don't inflate the streak
//   - next day: the streak continues
//   - gap of more than one day: the streak restarts at 1
//
// A last date in the future (clock skew, out-of-order event) is treated as
// same-day: the streak is untouched and the last date never moves backwards.
func NextStreak(streak int, lastDate, today string) (int, string) {
	if lastDate == "" {
		return 1, today
	}

	diff := daysBetween(lastDate, today)
	switch {
	case diff <= 0:
		return streak, lastDate
	case diff == 1:
		return streak + 1, today
	default:
		return 1, today
	}
}

// daysBetween returns the number of whole calendar days from one date to
// another. Unparsable dates yield 0, which the streak logic treats as
// same-day.
func daysBetween(from, to string) int {
	fromDate, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0
	}
	toDate, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0
	}
	return int(toDate.Sub(fromDate).Hours() / 24)
}
