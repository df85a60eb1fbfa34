package playlists

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hayley-d/Meloob-sub000/internal/store"
)

// handleBulkSongs resolves the songs of a playlist from their ids, in store
// order. Empty input short-circuits without a query.
func (s *Server) handleBulkSongs(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SongIDs []string `json:"songIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len(body.SongIDs) == 0 {
		writeJSON(w, http.StatusOK, []store.Song{})
		return
	}

	songs, err := s.store.GetSongsByIDs(r.Context(), body.SongIDs)
	if err != nil {
		log.Printf("meloob: bulk songs: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title  string `json:"title"`
		Artist string `json:"artist"`
		Link   string `json:"link"`
		Genre  string `json:"genre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Title = strings.TrimSpace(body.Title)
	body.Artist = strings.TrimSpace(body.Artist)
	if body.Title == "" || body.Artist == "" {
		writeError(w, http.StatusBadRequest, "title and artist are required")
		return
	}

	// The link's streaming-URL shape is only checked client-side.
	song := &store.Song{
		ID:     uuid.NewString(),
		Title:  body.Title,
		Artist: body.Artist,
		Link:   strings.TrimSpace(body.Link),
		Genre:  body.Genre,
	}
	if err := s.store.CreateSong(r.Context(), song); err != nil {
		log.Printf("meloob: add song: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	song, err := s.store.GetSong(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "song not found")
			return
		}
		log.Printf("meloob: get song: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.store.ListGenres(r.Context())
	if err != nil {
		log.Printf("meloob: list genres: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) handleAddGenre(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	// Genre names are not unique; duplicates are allowed.
	genre := &store.Genre{ID: uuid.NewString(), Name: body.Name}
	if err := s.store.CreateGenre(r.Context(), genre); err != nil {
		log.Printf("meloob: add genre: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, genre)
}
