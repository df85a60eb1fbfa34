// Package users serves user profiles and the relationship mutations:
// the follow graph and the saved-playlists toggle.
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/hayley-d/Meloob-sub000/internal/events"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

type Server struct {
	store  store.Store
	events *events.Publisher
}

func NewServer(st store.Store, ev *events.Publisher) *Server {
	return &Server{store: st, events: ev}
}

// Register attaches the user routes to the shared /api router. The legacy
// client uses both /users and /user prefixes, so the paths keep both.
func (s *Server) Register(r chi.Router) {
	r.Get("/users", s.handleListUsers)
	r.Get("/users/{id}", s.handleGetUser)
	r.Put("/users/{id}", s.handleUpdateUser)
	r.Patch("/users/{id}/follow", s.handleFollow)

	r.Delete("/user/{userId}/follower/{followerId}", s.handleUnfollow)
	r.Put("/user/{userId}/save-playlist", s.handleSavePlaylist)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func appendUnique(ids []string, id string) []string {
	if contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
