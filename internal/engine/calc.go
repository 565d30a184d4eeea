package engine

const (
	// BaseXPPerDifficulty scales the flat award with task difficulty.
	BaseXPPerDifficulty = 10

	// StreakBonusPerDay and StreakBonusCapDays bound the streak bonus at
	// +20 so very long streaks don't compound rewards forever.
	StreakBonusPerDay  = 2
	StreakBonusCapDays = 10

	// XPPerLevel drives the derived level: level = 1 + xp/XPPerLevel.
	XPPerLevel = 100
)

// Progress is the mutable slice of a user's progression state, detached
// from storage so the calculator stays pure.
type Progress struct {
	XP            int
	Level         int
	StreakCurrent int
	StreakBest    int
	BestBadgeTier int
	LastActivity  Date // zero = no prior activity
}

// Advance describes what one completion did to the state.
type Advance struct {
	XPGained      int
	LevelBefore   int
	LevelAfter    int
	LevelUp       bool
	Streak        int
	BadgeUnlocked bool
	Badge         BadgeTier
}

// LevelForXP derives the level from total XP. No upper bound.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// XPGain computes the award for one completion before it is applied.
func XPGain(d Difficulty, streak int) int {
	bonusDays := streak
	if bonusDays > StreakBonusCapDays {
		bonusDays = StreakBonusCapDays
	}
	return BaseXPPerDifficulty*int(d) + bonusDays*StreakBonusPerDay
}

// AdvanceProgress applies one completion on `today` to the prior state and
// returns the new state plus the delta. Pure: no I/O, no clock, fully
// table-testable.
//
// Streak rule: same day → unchanged (XP still awarded); yesterday → +1;
// anything else (gap ≥ 2 days or first ever) → reset to 1.
func AdvanceProgress(prior Progress, d Difficulty, today Date) (Progress, Advance) {
	if !d.IsValid() {
		d = ClampDifficulty(int(d))
	}

	next := prior

	switch {
	case prior.LastActivity == today:
		// second completion today, streak untouched
	case !prior.LastActivity.IsZero() && prior.LastActivity.AddDays(1) == today:
		next.StreakCurrent = prior.StreakCurrent + 1
	default:
		next.StreakCurrent = 1
	}
	if next.StreakCurrent > next.StreakBest {
		next.StreakBest = next.StreakCurrent
	}

	gained := XPGain(d, next.StreakCurrent)
	next.XP = prior.XP + gained
	next.Level = LevelForXP(next.XP)
	next.LastActivity = today

	adv := Advance{
		XPGained:    gained,
		LevelBefore: LevelForXP(prior.XP),
		LevelAfter:  next.Level,
		Streak:      next.StreakCurrent,
	}
	adv.LevelUp = adv.LevelAfter > adv.LevelBefore

	// Badge tier only ever advances; losing the streak later keeps it.
	if tier, ok := BadgeForStreak(next.StreakCurrent); ok && tier.Threshold > prior.BestBadgeTier {
		next.BestBadgeTier = tier.Threshold
		adv.BadgeUnlocked = true
		adv.Badge = tier
	}

	return next, adv
}
