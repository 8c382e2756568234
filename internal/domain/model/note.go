package model

import "time"

// Note is a single note owned by a user. Category and Subcategory are nullable
// foreign keys on the server; a nil pointer means "uncategorised".
type Note struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	Category    *int64    `json:"category"`
	Subcategory *int64    `json:"subcategory"`
	User        int64     `json:"user,omitempty"`
}

// NoteInput is the request payload for creating or replacing a note.
// It is sent exactly as given. Nil Category and Subcategory are omitted, and
// the server keeps its current value for omitted fields on update.
type NoteInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    *int64 `json:"category,omitempty"`
	Subcategory *int64 `json:"subcategory,omitempty"`
}
