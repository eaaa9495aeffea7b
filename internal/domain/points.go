package domain

// Base point values per difficulty tier. Completing the period goal doubles
// the award for the completing advance.
const (
	pointsEasy   = 3
	pointsMedium = 5
	pointsHard   = 8

	completionMultiplier = 2
)

// BasePoints maps a difficulty tier to its base point value. Unrecognized
// tiers fall back to the medium value.
func BasePoints(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return pointsEasy
	case DifficultyHard:
		return pointsHard
	default:
		return pointsMedium
	}
}

// AwardedPoints returns the points credited for one advance: the base value
// for the difficulty, doubled when the advance completes the period goal.
func AwardedPoints(d Difficulty, completed bool) int {
	p := BasePoints(d)
	if completed {
		return p * completionMultiplier
	}
	return p
}
