package domain

type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// ValidCadences is the canonical set of accepted cadence strings.
var ValidCadences = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[string]bool{
	"easy": true, "medium": true, "hard": true,
}

type HabitStatus string

const (
	HabitActive   HabitStatus = "active"
	HabitArchived HabitStatus = "archived"
)
