// Package playlists serves playlist CRUD, the composed playlist-detail
// view, the delete cascade and the bulk id lookups (playlists and songs),
// plus the song and genre collections.
package playlists

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

func (s *Server) Register(r chi.Router) {
	r.Get("/playlists", s.handleListPlaylists)
	// POST /playlists is the legacy bulk lookup, not a create; creation
	// lives under /playlists/add.
	r.Post("/playlists", s.handleBulkPlaylists)
	r.Post("/playlists/add", s.handleCreatePlaylist)
	r.Get("/playlists/{playlistId}", s.handleGetPlaylist)
	r.Put("/playlists/{playlistId}", s.handleUpdatePlaylist)
	r.Delete("/playlists/{playlistId}", s.handleDeletePlaylist)

	r.Post("/songsInPlaylist", s.handleBulkSongs)
	r.Post("/songs/add", s.handleAddSong)
	r.Get("/songs/{id}", s.handleGetSong)

	r.Get("/genres", s.handleListGenres)
	r.Post("/genres", s.handleAddGenre)
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
