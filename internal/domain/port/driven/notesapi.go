package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

var (
	// ErrUnauthorized is matched by API errors carrying a 401 status.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired is returned when an expired access token could not be
	// refreshed. Callers should send the user back through Login.
	ErrSessionExpired = errors.New("session expired: login required")
)

// NotesAPI defines the driven port for the Notty REST API.
type NotesAPI interface {
	// Authentication

	Register(ctx context.Context, user model.Registration) (*model.User, error)
	// Login exchanges credentials for a token pair and persists both tokens.
	Login(ctx context.Context, creds model.LoginCredentials) (*model.TokenPair, error)
	// RefreshAccessToken trades the stored refresh token for a new access token
	// and persists it.
	RefreshAccessToken(ctx context.Context) (string, error)

	// Notes

	// ListNotes recovers once from an expired access token by refreshing it.
	ListNotes(ctx context.Context) ([]model.Note, error)
	GetNote(ctx context.Context, id int64) (*model.Note, error)
	CreateNote(ctx context.Context, note model.NoteInput) (*model.Note, error)
	UpdateNote(ctx context.Context, id int64, note model.NoteInput) (*model.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	// Categories

	FetchCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, category model.CategoryInput) (*model.Category, error)
	CreateSubcategory(ctx context.Context, subcategory model.SubcategoryInput) (*model.Subcategory, error)
}
