package engine

type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// ClampDifficulty forces a stored or user-supplied value into [1,3].
func ClampDifficulty(n int) Difficulty {
	if n < int(DifficultyEasy) {
		return DifficultyEasy
	}
	if n > int(DifficultyHard) {
		return DifficultyHard
	}
	return Difficulty(n)
}
