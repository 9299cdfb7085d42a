package models

import (
	"fmt"
	"strings"
)

// Ratings use a five-point scale, from very poor to excellent.
const (
	MinRating = 1
	MaxRating = 5
)

// BulletFields lists the rating fields that have a history endpoint.
var BulletFields = []string{"day_rating", "mood", "anxiety", "eating_habits"}

type Bullet struct {
	ID           ID     `json:"id"`
	Date         string `json:"date"`
	DayRating    int    `json:"day_rating"`
	Mood         int    `json:"mood"`
	Anxiety      int    `json:"anxiety"`
	EatingHabits int    `json:"eating_habits"`
	Created      string `json:"created,omitempty"`
	Updated      string `json:"updated,omitempty"`
}

type BulletCreate struct {
	Date         string `json:"date,omitempty"`
	DayRating    int    `json:"day_rating"`
	Mood         int    `json:"mood"`
	Anxiety      int    `json:"anxiety"`
	EatingHabits int    `json:"eating_habits"`
}

func (b BulletCreate) Validate() error {
	ratings := []struct {
		name  string
		value int
	}{
		{"day_rating", b.DayRating},
		{"mood", b.Mood},
		{"anxiety", b.Anxiety},
		{"eating_habits", b.EatingHabits},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return &FieldError{Field: r.name, Err: fmt.Errorf("must be between %d and %d", MinRating, MaxRating)}
		}
	}
	return nil
}

type BulletUpdate struct {
	Date         *string `json:"date,omitempty"`
	DayRating    *int    `json:"day_rating,omitempty"`
	Mood         *int    `json:"mood,omitempty"`
	Anxiety      *int    `json:"anxiety,omitempty"`
	EatingHabits *int    `json:"eating_habits,omitempty"`
}

type BulletAverages struct {
	DayRating    float64 `json:"day_rating"`
	Mood         float64 `json:"mood"`
	Anxiety      float64 `json:"anxiety"`
	EatingHabits float64 `json:"eating_habits"`
}

// FieldHistory is the rating history of one field over a window of days.
type FieldHistory struct {
	Field        string             `json:"field"`
	PeriodDays   int                `json:"period_days"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	TotalEntries int                `json:"total_entries"`
	Data         []FieldHistoryData `json:"data"`
}

type FieldHistoryData struct {
	Date   string  `json:"date"`
	Rating float64 `json:"rating"`
}

// IsBulletField reports whether name is a rating field with history.
func IsBulletField(name string) bool {
	for _, f := range BulletFields {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}
