package domain

// gradeTable maps accuracy thresholds to tiers, highest first. The first
// matching threshold wins.
var gradeTable = []struct {
	threshold float64
	tier      string
	message   string
}{
	{90, "A+", "Outstanding! You're a quiz master!"},
	{80, "A", "Excellent work! You really know your stuff!"},
	{70, "B+", "Great job! You're doing well!"},
	{60, "B", "Good effort! Keep practicing!"},
	{50, "C+", "Not bad! There's room for improvement!"},
}

// GradeFor maps an accuracy percentage to its grade tier.
func GradeFor(accuracy float64) Grade {
	for _, g := range gradeTable {
		if accuracy >= g.threshold {
			return Grade{Tier: g.tier, Message: g.message}
		}
	}
	return Grade{Tier: "C", Message: "Keep studying and try again!"}
}

// PointsFor returns the points a correct answer earns at the given difficulty.
// Unrecognized or missing tags score as medium.
func PointsFor(difficulty string) int {
	switch difficulty {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 2
}
