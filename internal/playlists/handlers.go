package playlists

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hayley-d/Meloob-sub000/internal/legacydate"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

func (s *Server) handleListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.store.ListPlaylists(r.Context())
	if err != nil {
		log.Printf("meloob: list playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, playlists)
}

func (s *Server) handleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistId")

	view, err := s.aggregateDetail(r.Context(), playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("meloob: get playlist %s: %v", playlistID, err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		UserID      string   `json:"userId"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		CoverImage  string   `json:"coverImage"`
		Genre       string   `json:"genre"`
		Hashtags    []string `json:"hashtags"`
		Songs       []string `json:"songs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" || len(body.Name) > 200 {
		writeError(w, http.StatusBadRequest, "name must be between 1 and 200 characters")
		return
	}
	if strings.TrimSpace(body.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	owner, err := s.store.GetUser(ctx, body.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: create playlist load owner: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	playlist := &store.Playlist{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		Name:        body.Name,
		Description: strings.TrimSpace(body.Description),
		CoverImage:  body.CoverImage,
		DateCreated: legacydate.StampLong(time.Now()),
		Genre:       body.Genre,
		Hashtags:    body.Hashtags,
		Songs:       body.Songs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreatePlaylist(ctx, playlist); err != nil {
		log.Printf("meloob: create playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Second, independent write: the playlist exists even if this one fails.
	owner.PlaylistsCreated = append(owner.PlaylistsCreated, playlist.ID)
	if err := s.store.UpdateUserRelations(ctx, owner); err != nil {
		log.Printf("meloob: create playlist update owner: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.events.Publish(ctx, "playlist.created", map[string]any{
		"playlistId": playlist.ID,
		"userId":     owner.ID,
	})

	writeJSON(w, http.StatusCreated, playlist)
}

func (s *Server) handleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := chi.URLParam(r, "playlistId")

	var body struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		CoverImage  *string   `json:"coverImage"`
		Genre       *string   `json:"genre"`
		Hashtags    *[]string `json:"hashtags"`
		Songs       *[]string `json:"songs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("meloob: update playlist load: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if name == "" || len(name) > 200 {
			writeError(w, http.StatusBadRequest, "name must be between 1 and 200 characters")
			return
		}
		playlist.Name = name
	}
	if body.Description != nil {
		playlist.Description = strings.TrimSpace(*body.Description)
	}
	if body.CoverImage != nil {
		playlist.CoverImage = *body.CoverImage
	}
	if body.Genre != nil {
		playlist.Genre = *body.Genre
	}
	if body.Hashtags != nil {
		playlist.Hashtags = *body.Hashtags
	}
	if body.Songs != nil {
		// Duplicates are allowed; the list is stored as sent.
		playlist.Songs = *body.Songs
	}

	if err := s.store.UpdatePlaylist(ctx, playlist); err != nil {
		log.Printf("meloob: update playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// handleDeletePlaylist removes the playlist, then repairs the references to
// it: the owner's playlists_created and every user's playlists_saved. The
// steps are sequential, unwrapped writes, so a mid-sequence failure leaves
// a partial cascade. Comments referencing the playlist are kept — known gap
// carried over from the legacy system.
func (s *Server) handleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := chi.URLParam(r, "playlistId")

	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("meloob: delete playlist load: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.store.DeletePlaylist(ctx, playlistID); err != nil {
		log.Printf("meloob: delete playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	owner, err := s.store.GetUser(ctx, playlist.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("meloob: delete playlist load owner: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if owner != nil {
		owner.PlaylistsCreated = remove(owner.PlaylistsCreated, playlistID)
		if err := s.store.UpdateUserRelations(ctx, owner); err != nil {
			log.Printf("meloob: delete playlist update owner: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	if err := s.store.RemovePlaylistFromSaved(ctx, playlistID); err != nil {
		log.Printf("meloob: delete playlist unsave: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.events.Publish(ctx, "playlist.deleted", map[string]any{
		"playlistId": playlistID,
		"userId":     playlist.UserID,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "playlist deleted"})
}

// handleBulkPlaylists resolves a list of playlist ids. Results come back in
// store order, not input order. An empty id list returns an empty array
// without touching the store.
func (s *Server) handleBulkPlaylists(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlaylistIDs []string `json:"playlistIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(body.PlaylistIDs) == 0 {
		writeJSON(w, http.StatusOK, []store.Playlist{})
		return
	}

	playlists, err := s.store.GetPlaylistsByIDs(r.Context(), body.PlaylistIDs)
	if err != nil {
		log.Printf("meloob: bulk playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, playlists)
}
