package models

// Step is the screen the app shows.
type Step string

const (
	StepInput  Step = "input"
	StepResult Step = "result"
)

// Tab is the active results tab.
type Tab string

const (
	TabPlan  Tab = "plan"
	TabStats Tab = "stats"
)

func (t Tab) Valid() bool {
	return t == TabPlan || t == TabStats
}

// AppState is the persisted blob. It is always written whole.
type AppState struct {
	Step               Step        `json:"step"`
	ActiveTab          Tab         `json:"activeTab"`
	UserData           UserConfig  `json:"userData"`
	Plan               []WeekBlock `json:"plan"`
	ExpandedWeek       *int        `json:"expandedWeek"`
	CompletedSessions  []string    `json:"completedSessions"`
	CompletedExercises []string    `json:"completedExercises"`
}

// DefaultAppState is the state of a fresh install.
func DefaultAppState() AppState {
	week := 1
	return AppState{
		Step:               StepInput,
		ActiveTab:          TabPlan,
		UserData:           DefaultUserConfig(),
		Plan:               []WeekBlock{},
		ExpandedWeek:       &week,
		CompletedSessions:  []string{},
		CompletedExercises: []string{},
	}
}

// Week returns the block numbered n.
func (s AppState) Week(n int) (WeekBlock, bool) {
	for _, w := range s.Plan {
		if w.WeekNumber == n {
			return w, true
		}
	}
	return WeekBlock{}, false
}
