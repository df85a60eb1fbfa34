package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of Store for handler tests.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateUser(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockStore) GetUser(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockStore) GetUsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockStore) ListUsers(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockStore) UpdateUserProfile(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockStore) UpdateUserRelations(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockStore) CreatePlaylist(ctx context.Context, p *Playlist) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStore) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Playlist), args.Error(1)
}

func (m *MockStore) GetPlaylistsByIDs(ctx context.Context, ids []string) ([]Playlist, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Playlist), args.Error(1)
}

func (m *MockStore) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Playlist), args.Error(1)
}

func (m *MockStore) UpdatePlaylist(ctx context.Context, p *Playlist) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStore) DeletePlaylist(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) RemovePlaylistFromSaved(ctx context.Context, playlistID string) error {
	args := m.Called(ctx, playlistID)
	return args.Error(0)
}

func (m *MockStore) CreateSong(ctx context.Context, s *Song) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStore) GetSong(ctx context.Context, id string) (*Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Song), args.Error(1)
}

func (m *MockStore) GetSongsByIDs(ctx context.Context, ids []string) ([]Song, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Song), args.Error(1)
}

func (m *MockStore) CreateGenre(ctx context.Context, g *Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockStore) GetGenre(ctx context.Context, id string) (*Genre, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Genre), args.Error(1)
}

func (m *MockStore) ListGenres(ctx context.Context) ([]Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Genre), args.Error(1)
}

func (m *MockStore) CreateComment(ctx context.Context, c *Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) ListCommentsForPlaylist(ctx context.Context, playlistID string) ([]Comment, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Comment), args.Error(1)
}
