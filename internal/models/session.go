package models

import (
	"fmt"
	"net/url"
)

// ExerciseTemplate is one block of a session: a running segment or a gym
// exercise.
type ExerciseTemplate struct {
	Name         string   `json:"name" yaml:"name"`
	Sets         Quantity `json:"sets" yaml:"sets"`
	Reps         Quantity `json:"reps" yaml:"reps"`
	Rest         string   `json:"rest" yaml:"rest"`
	RPE          int      `json:"rpe" yaml:"rpe"`
	Note         string   `json:"note" yaml:"note"`
	ImageKeyword string   `json:"imageKeyword" yaml:"image_keyword"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	ImageURL     string   `json:"imageUrl,omitempty" yaml:"image_url"`
}

// ImageSource returns the explicit image URL, or a keyword search fallback.
func (e ExerciseTemplate) ImageSource() string {
	if e.ImageURL != "" {
		return e.ImageURL
	}
	return "https://source.unsplash.com/800x600/?fitness," + url.QueryEscape(e.ImageKeyword)
}

// Session is one workout of a week.
type Session struct {
	ID             string             `json:"id"`
	Day            string             `json:"day"`
	Category       Category           `json:"category"`
	Type           string             `json:"type"`
	Structure      Structure          `json:"structure"`
	Intensity      Intensity          `json:"intensity"`
	Duration       string             `json:"duration"`
	DurationMin    int                `json:"durationMin"`
	Distance       string             `json:"distance"`
	DistanceKm     float64            `json:"distanceKm,omitempty"`
	PaceTarget     string             `json:"paceTarget"`
	PaceGap        int                `json:"paceGap"`
	RPE            int                `json:"rpe"`
	Description    string             `json:"description"`
	ScienceNote    string             `json:"scienceNote"`
	PlanningAdvice string             `json:"planningAdvice"`
	Exercises      []ExerciseTemplate `json:"exercises"`
	Tags           []string           `json:"tags,omitempty"`
}

// HasTag reports whether the session carries tag.
func (s Session) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ExerciseID returns the completion id of the exercise at index i.
func (s Session) ExerciseID(i int) string {
	return ExerciseID(s.ID, i)
}

// ExerciseID builds "{sessionId}-ex-{index}".
func ExerciseID(sessionID string, i int) string {
	return fmt.Sprintf("%s-ex-%d", sessionID, i)
}

// ScheduleDay is one weekday slot of a week's calendar.
type ScheduleDay struct {
	Day        string   `json:"day"`
	Activity   string   `json:"activity"`
	Focus      string   `json:"focus"`
	SessionIDs []string `json:"sessionIds"`
}

// WeekBlock is one week of the plan.
type WeekBlock struct {
	WeekNumber  int           `json:"weekNumber"`
	Focus       string        `json:"focus"`
	VolumeLabel string        `json:"volumeLabel"`
	Sessions    []Session     `json:"sessions"`
	Schedule    []ScheduleDay `json:"schedule"`
}

// SessionIDs returns the ids of the week's sessions in generation order.
func (w WeekBlock) SessionIDs() []string {
	ids := make([]string, len(w.Sessions))
	for i, s := range w.Sessions {
		ids[i] = s.ID
	}
	return ids
}

// Session looks up a session by id.
func (w WeekBlock) Session(id string) (Session, bool) {
	for _, s := range w.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// TotalMinutes sums the planned duration of the week.
func (w WeekBlock) TotalMinutes() int {
	total := 0
	for _, s := range w.Sessions {
		total += s.DurationMin
	}
	return total
}

// PaceSet holds the formatted and numeric paces of one week, in min/km.
type PaceSet struct {
	Race         string  `json:"race"`
	Threshold    string  `json:"threshold"`
	Interval     string  `json:"interval"`
	Easy         string  `json:"easy"`
	EasyRange    string  `json:"easyRange"`
	Gap          int     `json:"gap"`
	ValRace      float64 `json:"valRace"`
	ValThreshold float64 `json:"valThreshold"`
	ValInterval  float64 `json:"valInterval"`
	ValEasy      float64 `json:"valEasy"`
}
