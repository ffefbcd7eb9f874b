package workouts

// GoalOther is the catch-all bucket for categories not claimed by any of
// the user's selected goals.
const GoalOther = "Other"

// DefaultGoalCategories maps each selectable fitness goal to the canonical
// categories that count towards it.
func DefaultGoalCategories() map[string][]string {
	return map[string][]string{
		"Build Muscles":       {CategoryUpperBody, CategoryLowerBody, CategoryStrengthTraining},
		"Improve Cardio":      {CategoryCardio},
		"Improve Flexibility": {CategoryMobility, CategoryFlexibility},
		"Lose Weight":         {CategoryCardio, CategoryStrengthTraining, CategoryCore},
	}
}

// GroupByGoals buckets all-time category counts into the user's selected
// fitness goals. A category claimed by several selected goals counts towards
// each of them; unclaimed categories are summed into the "Other" bucket.
// Unknown goals yield 0. The counts map is never mutated.
func GroupByGoals(counts map[string]int, goals []string, goalCategories map[string][]string) map[string]int {
	grouped := make(map[string]int, len(goals)+1)
	claimed := make(map[string]bool)

	for _, goal := range goals {
		grouped[goal] = 0
		for _, category := range goalCategories[goal] {
			grouped[goal] += counts[category]
			claimed[category] = true
		}
	}

	other := 0
	for category, count := range counts {
		if !claimed[category] {
			other += count
		}
	}
	grouped[GoalOther] = other

	return grouped
}
