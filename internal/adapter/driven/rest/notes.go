package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

const (
	notesPath         = "/notes/"
	categoriesPath    = "/categories/"
	subcategoriesPath = "/subcategories/"
)

func notePath(id int64) string {
	return fmt.Sprintf("/notes/%d/", id)
}

// ListNotes retrieves the current user's notes.
//
// If the API rejects the access token with a 401, the token is refreshed and
// the listing is attempted exactly once more; that second attempt does not
// recover. If the refresh fails, a *SessionExpiredError wrapping the original
// 401 is returned.
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := c.listNotes(ctx)
	if err == nil || !errors.Is(err, ErrUnauthorized) {
		return notes, err
	}

	c.logger.Warn("access token rejected, refreshing", "path", notesPath)

	if _, refreshErr := c.RefreshAccessToken(ctx); refreshErr != nil {
		c.logger.Error("failed to refresh token, login required", "error", refreshErr)
		return nil, &SessionExpiredError{Err: err, RefreshErr: refreshErr}
	}

	notes, err = c.listNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes after token refresh: %w", err)
	}
	return notes, nil
}

func (c *Client) listNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, notesPath, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// GetNote retrieves a single note by ID.
func (c *Client) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// CreateNote creates a note and returns it as stored by the server.
func (c *Client) CreateNote(ctx context.Context, note model.NoteInput) (*model.Note, error) {
	var created model.Note
	if err := c.do(ctx, http.MethodPost, notesPath, note, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateNote replaces the note with the given ID.
func (c *Client) UpdateNote(ctx context.Context, id int64, note model.NoteInput) (*model.Note, error) {
	var updated model.Note
	if err := c.do(ctx, http.MethodPut, notePath(id), note, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteNote deletes the note with the given ID.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// FetchCategories retrieves the current user's categories.
func (c *Client) FetchCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, categoriesPath, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, category model.CategoryInput) (*model.Category, error) {
	var created model.Category
	if err := c.do(ctx, http.MethodPost, categoriesPath, category, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateSubcategory creates a subcategory under an existing category.
func (c *Client) CreateSubcategory(ctx context.Context, subcategory model.SubcategoryInput) (*model.Subcategory, error) {
	var created model.Subcategory
	if err := c.do(ctx, http.MethodPost, subcategoriesPath, subcategory, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
