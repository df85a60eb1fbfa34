package playlists

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hayley-d/Meloob-sub000/internal/events"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

func newTestRouter(st store.Store) chi.Router {
	s := NewServer(st, events.NewPublisher(nil))
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func TestHandleGetPlaylistNotFound(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetPlaylist", mock.Anything, "missing").Return(nil, store.ErrNotFound)

	req := httptest.NewRequest("GET", "/playlists/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "playlist not found")
}

func TestHandleGetPlaylistComposedView(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{
		ID: "pl-1", UserID: "gone", Genre: "also-gone", Name: "Mix",
	}, nil)
	st.On("GetGenre", mock.Anything, "also-gone").Return(nil, store.ErrNotFound)
	st.On("GetUser", mock.Anything, "gone").Return(nil, store.ErrNotFound)
	st.On("ListCommentsForPlaylist", mock.Anything, "pl-1").Return([]store.Comment{}, nil)

	req := httptest.NewRequest("GET", "/playlists/pl-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, "Unknown Genre", view["genre"])
	assert.Nil(t, view["user"])
}

func TestHandleCreatePlaylist(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	owner := &store.User{ID: "u-1", Username: "ana", PlaylistsCreated: []string{}}
	st.On("GetUser", mock.Anything, "u-1").Return(owner, nil)

	var created *store.Playlist
	st.On("CreatePlaylist", mock.Anything, mock.AnythingOfType("*store.Playlist")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*store.Playlist)
		}).Return(nil)
	st.On("UpdateUserRelations", mock.Anything, owner).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"userId": "u-1",
		"name":   "Roadtrip",
		"genre":  "g-1",
		"songs":  []string{"s-1", "s-1"},
	})
	req := httptest.NewRequest("POST", "/playlists/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	// Playlists stamp the long date form.
	assert.Len(t, created.DateCreated, 10)
	// The new id lands on the owner's created list.
	assert.Contains(t, owner.PlaylistsCreated, created.ID)
	// Duplicate song ids survive creation untouched.
	assert.Equal(t, []string{"s-1", "s-1"}, created.Songs)
}

func TestHandleCreatePlaylistUnknownUser(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetUser", mock.Anything, "ghost").Return(nil, store.ErrNotFound)

	body, _ := json.Marshal(map[string]any{"userId": "ghost", "name": "Mix"})
	req := httptest.NewRequest("POST", "/playlists/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	st.AssertNotCalled(t, "CreatePlaylist", mock.Anything, mock.Anything)
}

func TestHandleDeletePlaylistCascade(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	owner := &store.User{ID: "u-1", PlaylistsCreated: []string{"pl-1", "pl-2"}}
	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{ID: "pl-1", UserID: "u-1"}, nil)
	st.On("DeletePlaylist", mock.Anything, "pl-1").Return(nil)
	st.On("GetUser", mock.Anything, "u-1").Return(owner, nil)
	st.On("UpdateUserRelations", mock.Anything, owner).Return(nil)
	st.On("RemovePlaylistFromSaved", mock.Anything, "pl-1").Return(nil)

	req := httptest.NewRequest("DELETE", "/playlists/pl-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pl-2"}, owner.PlaylistsCreated)
	st.AssertCalled(t, "DeletePlaylist", mock.Anything, "pl-1")
	st.AssertCalled(t, "RemovePlaylistFromSaved", mock.Anything, "pl-1")
	// Orphaned comments are left behind on purpose.
	st.AssertNotCalled(t, "ListCommentsForPlaylist", mock.Anything, mock.Anything)
}

func TestHandleDeletePlaylistMissingOwnerTolerated(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetPlaylist", mock.Anything, "pl-1").Return(&store.Playlist{ID: "pl-1", UserID: "ghost"}, nil)
	st.On("DeletePlaylist", mock.Anything, "pl-1").Return(nil)
	st.On("GetUser", mock.Anything, "ghost").Return(nil, store.ErrNotFound)
	st.On("RemovePlaylistFromSaved", mock.Anything, "pl-1").Return(nil)

	req := httptest.NewRequest("DELETE", "/playlists/pl-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	st.AssertNotCalled(t, "UpdateUserRelations", mock.Anything, mock.Anything)
}

func TestHandleDeletePlaylistNotFound(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetPlaylist", mock.Anything, "missing").Return(nil, store.ErrNotFound)

	req := httptest.NewRequest("DELETE", "/playlists/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	st.AssertNotCalled(t, "DeletePlaylist", mock.Anything, mock.Anything)
}

func TestHandleBulkPlaylistsEmptyShortCircuit(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	body, _ := json.Marshal(map[string]any{"playlistIds": []string{}})
	req := httptest.NewRequest("POST", "/playlists", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	st.AssertNotCalled(t, "GetPlaylistsByIDs", mock.Anything, mock.Anything)
}

func TestHandleBulkPlaylists(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	st.On("GetPlaylistsByIDs", mock.Anything, []string{"pl-1", "pl-2"}).Return([]store.Playlist{
		{ID: "pl-2", Name: "B"},
		{ID: "pl-1", Name: "A"},
	}, nil)

	body, _ := json.Marshal(map[string]any{"playlistIds": []string{"pl-1", "pl-2"}})
	req := httptest.NewRequest("POST", "/playlists", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var playlists []store.Playlist
	require.NoError(t, json.NewDecoder(w.Body).Decode(&playlists))
	require.Len(t, playlists, 2)
	// Store order is passed through as-is, no reordering to input order.
	assert.Equal(t, "pl-2", playlists[0].ID)
}

func TestHandleUpdatePlaylist(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	existing := &store.Playlist{ID: "pl-1", UserID: "u-1", Name: "Old", Songs: []string{"s-1"}}
	st.On("GetPlaylist", mock.Anything, "pl-1").Return(existing, nil)
	st.On("UpdatePlaylist", mock.Anything, existing).Return(nil)

	body, _ := json.Marshal(map[string]any{
		"name":  "New",
		"songs": []string{"s-1", "s-2", "s-2"},
	})
	req := httptest.NewRequest("PUT", "/playlists/pl-1", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "New", existing.Name)
	assert.Equal(t, []string{"s-1", "s-2", "s-2"}, existing.Songs)
}

func TestHandleBulkSongsEmptyShortCircuit(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	body, _ := json.Marshal(map[string]any{"songIds": []string{}})
	req := httptest.NewRequest("POST", "/songsInPlaylist", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	st.AssertNotCalled(t, "GetSongsByIDs", mock.Anything, mock.Anything)
}

func TestHandleAddSongValidation(t *testing.T) {
	st := &store.MockStore{}
	r := newTestRouter(st)

	body, _ := json.Marshal(map[string]string{"title": "Song", "artist": "  "})
	req := httptest.NewRequest("POST", "/songs/add", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	st.AssertNotCalled(t, "CreateSong", mock.Anything, mock.Anything)
}
