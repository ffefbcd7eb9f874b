package workouts

// BadgeDefinition is a single achievement rule. Condition must be a pure
// predicate over the progress aggregate, safe to re-evaluate on every
// increment.
type BadgeDefinition struct {
	ID        string
	Title     string
	Condition func(p *Progress) bool
}

// BadgeStatus is the read-side view of one badge for a given user.
type BadgeStatus struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Earned bool   `json:"earned"`
}

func DefaultBadges() []BadgeDefinition {
	return []BadgeDefinition{
		{
			ID:        "badge_1",
			Title:     "First Workout!",
			Condition: func(p *Progress) bool { return p.TotalCompleted >= 1 },
		},
		{
			ID:        "badge_2",
			Title:     "10 Sessions",
			Condition: func(p *Progress) bool { return p.TotalCompleted >= 10 },
		},
		{
			ID:        "badge_3",
			Title:     "Streak Starter",
			Condition: func(p *Progress) bool { return p.StreakCount >= 3 },
		},
		{
			ID:        "badge_4",
			Title:     "Consistency Boss",
			Condition: func(p *Progress) bool { return p.StreakCount >= 7 },
		},
		{
			ID:        "badge_5",
			Title:     "50 Total Workouts",
			Condition: func(p *Progress) bool { return p.TotalCompleted >= 50 },
		},
	}
}

// Evaluator checks badge unlock conditions against a progress record.
// The badge set is injected at construction and read-only afterwards.
type Evaluator struct {
	badges []BadgeDefinition
}

func NewEvaluator(badges []BadgeDefinition) *Evaluator {
	return &Evaluator{
		badges: badges,
	}
}

// Evaluate returns the badges newly earned by the given progress record,
// i.e. those whose condition holds and which are not in earned yet. Earned
// badges are never revoked, so re-running with the same record is a no-op.
func (e *Evaluator) Evaluate(p *Progress, earned []string) []string {
	earnedSet := make(map[string]bool, len(earned))
	for _, id := range earned {
		earnedSet[id] = true
	}

	var newlyEarned []string
	for _, badge := range e.badges {
		if earnedSet[badge.ID] {
			continue
		}
		if badge.Condition(p) {
			newlyEarned = append(newlyEarned, badge.ID)
		}
	}
	return newlyEarned
}

// Statuses returns all known badges with their earned flag for display.
func (e *Evaluator) Statuses(earned []string) []BadgeStatus {
	earnedSet := make(map[string]bool, len(earned))
	for _, id := range earned {
		earnedSet[id] = true
	}

	statuses := make([]BadgeStatus, 0, len(e.badges))
	for _, badge := range e.badges {
		statuses = append(statuses, BadgeStatus{
			ID:     badge.ID,
			Title:  badge.Title,
			Earned: earnedSet[badge.ID],
		})
	}
	return statuses
}
