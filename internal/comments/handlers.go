package comments

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hayley-d/Meloob-sub000/internal/events"
	"github.com/hayley-d/Meloob-sub000/internal/legacydate"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

type Server struct {
	store  store.Store
	events *events.Publisher
}

func NewServer(st store.Store, ev *events.Publisher) *Server {
	return &Server{store: st, events: ev}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/comments/{playlistId}", s.handleListComments)
	r.Post("/comments/{playlistId}", s.handleAddComment)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistId")

	enriched, err := LoadForPlaylist(r.Context(), s.store, playlistID)
	if err != nil {
		log.Printf("meloob: list comments: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, enriched)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playlistID := chi.URLParam(r, "playlistId")

	var body struct {
		Content string `json:"content"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	body.Content = strings.TrimSpace(body.Content)
	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	if strings.TrimSpace(body.UserID) == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if _, err := s.store.GetPlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "playlist not found")
			return
		}
		log.Printf("meloob: add comment load playlist: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	comment := &store.Comment{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		UserID:     strings.TrimSpace(body.UserID),
		Content:    body.Content,
		// Comments always stamp the short form; playlists stamp DD/MM/YYYY.
		Date: legacydate.StampShort(time.Now()),
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		log.Printf("meloob: add comment: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.events.Publish(ctx, "comment.added", map[string]any{
		"playlistId": playlistID,
		"commentId":  comment.ID,
	})

	writeJSON(w, http.StatusCreated, comment)
}
