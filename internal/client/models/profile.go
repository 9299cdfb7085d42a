package models

import "strings"

// TextItem is the shape shared by affirmations, gratitudes and passions.
type TextItem struct {
	ID       ID     `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	IsActive bool   `json:"is_active"`
	Order    int    `json:"order"`
	Created  string `json:"created,omitempty"`
	Updated  string `json:"updated,omitempty"`
}

type TextItemCreate struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

func (c TextItemCreate) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return missing("text")
	}
	return nil
}

type TextItemUpdate struct {
	Text     *string `json:"text,omitempty"`
	Category *string `json:"category,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type (
	Affirmation = TextItem
	Gratitude   = TextItem
	Passion     = TextItem
)

type Favorite struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order"`
	Created     string `json:"created,omitempty"`
	Updated     string `json:"updated,omitempty"`
}

type FavoriteCreate struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

func (c FavoriteCreate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return missing("title")
	}
	if strings.TrimSpace(c.Category) == "" {
		return missing("category")
	}
	return nil
}

type FavoriteUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// About is the free-form "about me" profile section. The backend defines
// many more optional text fields; they are edited through AboutFields.
type About struct {
	ID            ID     `json:"id"`
	Nickname      string `json:"nickname,omitempty"`
	Location      string `json:"location,omitempty"`
	Occupation    string `json:"occupation,omitempty"`
	Education     string `json:"education,omitempty"`
	LifeGoals     string `json:"life_goals,omitempty"`
	Hobbies       string `json:"hobbies,omitempty"`
	CoreValues    string `json:"core_values,omitempty"`
	PersonalStory string `json:"personal_story,omitempty"`
	Notes         string `json:"notes,omitempty"`
	IsPublic      bool   `json:"is_public"`
	Created       string `json:"created,omitempty"`
	Updated       string `json:"updated,omitempty"`
}

// AboutFields is a partial update or create payload for the about section,
// keyed by backend field name.
type AboutFields map[string]string

// Validate requires at least one field. Empty values are allowed and clear
// the field on the server.
func (f AboutFields) Validate() error {
	if len(f) == 0 {
		return missing("fields")
	}
	return nil
}
