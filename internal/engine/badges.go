package engine

// BadgeTier is one streak milestone. Tiers are keyed by their threshold;
// a user's best tier never regresses once earned.
type BadgeTier struct {
	Threshold int
	ID        string
	Name      string
	Icon      string
}

// badgeTiers is ordered high→low so the first threshold ≤ streak wins.
var badgeTiers = []BadgeTier{
	{300, "eternal", "Eternal Flame", "🌋"},
	{200, "supernova", "Supernova", "💥"},
	{150, "nova", "Nova", "🌟"},
	{100, "inferno", "Inferno", "☄️"},
	{75, "furnace", "Furnace", "⚒️"},
	{50, "blaze", "Blaze", "🔥"},
	{30, "beacon", "Beacon", "🗼"},
	{21, "bonfire", "Bonfire", "🏕️"},
	{14, "torch", "Torch", "🕯️"},
	{7, "candle", "Candle", "🪔"},
	{3, "ember", "Ember", "✨"},
	{1, "spark", "Spark", "⚡"},
}

// BadgeForStreak returns the highest tier whose threshold is ≤ streak.
// Streak 0 earns nothing.
func BadgeForStreak(streak int) (BadgeTier, bool) {
	for _, t := range badgeTiers {
		if streak >= t.Threshold {
			return t, true
		}
	}
	return BadgeTier{}, false
}

// BadgeByThreshold resolves a stored tier value back to its badge.
func BadgeByThreshold(threshold int) (BadgeTier, bool) {
	for _, t := range badgeTiers {
		if t.Threshold == threshold {
			return t, true
		}
	}
	return BadgeTier{}, false
}
