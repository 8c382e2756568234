package cli_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/notty/internal/adapter/driven/memory"
	"github.com/ericfisherdev/notty/internal/adapter/driving/cli"
	"github.com/ericfisherdev/notty/internal/application"
	"github.com/ericfisherdev/notty/internal/domain/model"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// fakeAPI is an in-memory NotesAPI. err, when set, is returned by every call.
type fakeAPI struct {
	mu         sync.Mutex
	tokens     *memory.TokenStore
	notes      map[int64]model.Note
	categories []model.Category
	nextID     int64
	err        error

	lastLogin  model.LoginCredentials
	lastInput  model.NoteInput
	lastSubcat model.SubcategoryInput
	deleted    []int64
}

func newFakeAPI() *fakeAPI {
	created := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	work := int64(1)
	return &fakeAPI{
		tokens: memory.NewTokenStore(),
		notes: map[int64]model.Note{
			1: {ID: 1, Title: "Standup", Content: "- shipped login", CreatedAt: created, Category: &work},
			2: {ID: 2, Title: "Ideas", Content: "**bold** idea", CreatedAt: created},
		},
		categories: []model.Category{{ID: 1, Name: "Work"}},
		nextID:     3,
	}
}

func (f *fakeAPI) Register(_ context.Context, user model.Registration) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: 9, Username: user.Username, Email: user.Email}, nil
}

func (f *fakeAPI) Login(ctx context.Context, creds model.LoginCredentials) (*model.TokenPair, error) {
	f.mu.Lock()
	f.lastLogin = creds
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	_ = f.tokens.Set(ctx, driven.AccessTokenKey, "opaque-access")
	_ = f.tokens.Set(ctx, driven.RefreshTokenKey, "opaque-refresh")
	return &model.TokenPair{Access: "opaque-access", Refresh: "opaque-refresh"}, nil
}

func (f *fakeAPI) RefreshAccessToken(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	_ = f.tokens.Set(ctx, driven.AccessTokenKey, "opaque-access-2")
	return "opaque-access-2", nil
}

func (f *fakeAPI) ListNotes(_ context.Context) ([]model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	notes := make([]model.Note, 0, len(f.notes))
	for id := int64(1); id < f.nextID; id++ {
		if n, ok := f.notes[id]; ok {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (f *fakeAPI) GetNote(_ context.Context, id int64) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.notes[id]
	return &n, nil
}

func (f *fakeAPI) CreateNote(_ context.Context, in model.NoteInput) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	n := model.Note{ID: f.nextID, Title: in.Title, Content: in.Content, Category: in.Category, Subcategory: in.Subcategory}
	f.notes[n.ID] = n
	f.nextID++
	return &n, nil
}

func (f *fakeAPI) UpdateNote(_ context.Context, id int64, in model.NoteInput) (*model.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInput = in
	n := model.Note{ID: id, Title: in.Title, Content: in.Content, Category: in.Category, Subcategory: in.Subcategory}
	f.notes[id] = n
	return &n, nil
}

func (f *fakeAPI) DeleteNote(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notes, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) FetchCategories(_ context.Context) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, in model.CategoryInput) (*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := model.Category{ID: int64(len(f.categories) + 1), Name: in.Name}
	f.categories = append(f.categories, c)
	return &c, nil
}

func (f *fakeAPI) CreateSubcategory(_ context.Context, in model.SubcategoryInput) (*model.Subcategory, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastSubcat = in
	return &model.Subcategory{ID: 5, Name: in.Name, Category: in.Category}, nil
}

// connectTo returns a Connector that wires the fake into real services.
func connectTo(api *fakeAPI, closed *bool) cli.Connector {
	return func(_ context.Context, _ *slog.Logger) (*cli.Services, func() error, error) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := &cli.Services{
			API:      api,
			Sessions: application.NewSessionService(api, api.tokens),
			Exporter: application.NewExportService(api, logger),
		}
		return svc, func() error {
			if closed != nil {
				*closed = true
			}
			return nil
		}, nil
	}
}
