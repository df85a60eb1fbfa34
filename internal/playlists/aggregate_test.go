package playlists

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hayley-d/Meloob-sub000/internal/events"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

func newAggServer(st store.Store) *Server {
	return NewServer(st, events.NewPublisher(nil))
}

func TestAggregateDetailResolvesEverything(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "u-1", Name: "Roadtrip", Genre: "g-1",
		DateCreated: "12/03/2024",
		Hashtags:    []string{"#summer"},
		Songs:       []string{"s-1", "s-2", "s-1"},
	}, nil)
	st.On("GetGenre", mock.Anything, "g-1").Return(&store.Genre{ID: "g-1", Name: "Rock"}, nil)
	st.On("GetUser", mock.Anything, "u-1").Return(&store.User{ID: "u-1", Username: "ana"}, nil)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{}, nil)

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	require.NoError(t, err)

	assert.Equal(t, "Rock", view.Genre)
	require.NotNil(t, view.User)
	assert.Equal(t, "ana", view.User.Username)
	// Songs keep order and duplicates.
	assert.Equal(t, []string{"s-1", "s-2", "s-1"}, view.Songs)
	assert.Empty(t, view.Comments)
}

func TestAggregateDetailDanglingGenre(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "u-1", Genre: "deleted-genre",
	}, nil)
	st.On("GetGenre", mock.Anything, "deleted-genre").Return(nil, store.ErrNotFound)
	st.On("GetUser", mock.Anything, "u-1").Return(&store.User{ID: "u-1"}, nil)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{}, nil)

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Equal(t, UnknownGenre, view.Genre)
}

func TestAggregateDetailEmptyGenreSkipsLookup(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "u-1", Genre: "",
	}, nil)
	st.On("GetUser", mock.Anything, "u-1").Return(&store.User{ID: "u-1"}, nil)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{}, nil)

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Equal(t, UnknownGenre, view.Genre)
	st.AssertNotCalled(t, "GetGenre", mock.Anything, mock.Anything)
}

func TestAggregateDetailMissingOwnerIsNull(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "deleted-user", Genre: "g-1",
	}, nil)
	st.On("GetGenre", mock.Anything, "g-1").Return(&store.Genre{ID: "g-1", Name: "Jazz"}, nil)
	st.On("GetUser", mock.Anything, "deleted-user").Return(nil, store.ErrNotFound)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{}, nil)

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Nil(t, view.User)
	// Owner resolution and genre resolution are independent.
	assert.Equal(t, "Jazz", view.Genre)
}

func TestAggregateDetailCommentAuthorsResolvedIndependently(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "u-owner",
	}, nil)
	st.On("GetUser", mock.Anything, "u-owner").Return(&store.User{ID: "u-owner"}, nil)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{
		{ID: "c-1", UserID: "gone", Date: "01/01/24"},
		{ID: "c-2", UserID: "u-owner", Date: "15/06/23"},
	}, nil)
	st.On("GetUsersByIDs", mock.Anything, []string{"gone", "u-owner"}).Return([]store.User{
		{ID: "u-owner"},
	}, nil)

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	require.NoError(t, err)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, "c-1", view.Comments[0].ID)
	assert.Nil(t, view.Comments[0].User)
	require.NotNil(t, view.Comments[1].User)
}

func TestAggregateDetailPlaylistNotFound(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "missing").Return(nil, store.ErrNotFound)

	_, err := s.aggregateDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAggregateDetailNoPartialResultOnFailure(t *testing.T) {
	st := &store.MockStore{}
	s := newAggServer(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "u-1",
	}, nil)
	st.On("GetUser", mock.Anything, "u-1").Return(&store.User{ID: "u-1"}, nil)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return(nil, errors.New("db down"))

	view, err := s.aggregateDetail(context.Background(), "pl-1")
	assert.Error(t, err)
	assert.Nil(t, view)
}
