package models

import "strings"

type DiaryEntry struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	DateCreated string `json:"date_created,omitempty"`
	UserID      ID     `json:"user_id,omitempty"`
	Date        string `json:"date,omitempty"`
}

type DiaryEntryCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date,omitempty"`
}

func (d DiaryEntryCreate) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return missing("title")
	}
	if strings.TrimSpace(d.Content) == "" {
		return missing("content")
	}
	return nil
}

type DiaryEntryUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Date    *string `json:"date,omitempty"`
}
