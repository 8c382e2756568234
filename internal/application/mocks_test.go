package application_test

import (
	"context"
	"errors"

	"github.com/ericfisherdev/notty/internal/domain/model"
)

var errNotStubbed = errors.New("not stubbed")

// mockNotesAPI implements driven.NotesAPI with overridable function fields.
// Unset fields return errNotStubbed.
type mockNotesAPI struct {
	login           func(ctx context.Context, creds model.LoginCredentials) (*model.TokenPair, error)
	refresh         func(ctx context.Context) (string, error)
	listNotes       func(ctx context.Context) ([]model.Note, error)
	fetchCategories func(ctx context.Context) ([]model.Category, error)
}

func (m *mockNotesAPI) Register(_ context.Context, _ model.Registration) (*model.User, error) {
	return nil, errNotStubbed
}

func (m *mockNotesAPI) Login(ctx context.Context, creds model.LoginCredentials) (*model.TokenPair, error) {
	if m.login == nil {
		return nil, errNotStubbed
	}
	return m.login(ctx, creds)
}

func (m *mockNotesAPI) RefreshAccessToken(ctx context.Context) (string, error) {
	if m.refresh == nil {
		return "", errNotStubbed
	}
	return m.refresh(ctx)
}

func (m *mockNotesAPI) ListNotes(ctx context.Context) ([]model.Note, error) {
	if m.listNotes == nil {
		return nil, errNotStubbed
	}
	return m.listNotes(ctx)
}

func (m *mockNotesAPI) GetNote(_ context.Context, _ int64) (*model.Note, error) {
	return nil, errNotStubbed
}

func (m *mockNotesAPI) CreateNote(_ context.Context, _ model.NoteInput) (*model.Note, error) {
	return nil, errNotStubbed
}

func (m *mockNotesAPI) UpdateNote(_ context.Context, _ int64, _ model.NoteInput) (*model.Note, error) {
	return nil, errNotStubbed
}

func (m *mockNotesAPI) DeleteNote(_ context.Context, _ int64) error {
	return errNotStubbed
}

func (m *mockNotesAPI) FetchCategories(ctx context.Context) ([]model.Category, error) {
	if m.fetchCategories == nil {
		return nil, errNotStubbed
	}
	return m.fetchCategories(ctx)
}

func (m *mockNotesAPI) CreateCategory(_ context.Context, _ model.CategoryInput) (*model.Category, error) {
	return nil, errNotStubbed
}

func (m *mockNotesAPI) CreateSubcategory(_ context.Context, _ model.SubcategoryInput) (*model.Subcategory, error) {
	return nil, errNotStubbed
}
