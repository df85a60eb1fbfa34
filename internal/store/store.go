// Package store persists the five Meloob collections in Postgres, treating
// each table as a document collection: id-array fields are jsonb documents
// and cross-collection references are plain text with no foreign keys.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Store interface {
	// users
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUserProfile(ctx context.Context, u *User) error
	// UpdateUserRelations rewrites only the four id-array fields of one user
	// document. Relationship mutations call it once per affected user; the
	// writes are independent, there is no transaction spanning two users.
	UpdateUserRelations(ctx context.Context, u *User) error

	// playlists
	CreatePlaylist(ctx context.Context, p *Playlist) error
	GetPlaylist(ctx context.Context, id string) (*Playlist, error)
	GetPlaylistsByIDs(ctx context.Context, ids []string) ([]Playlist, error)
	ListPlaylists(ctx context.Context) ([]Playlist, error)
	UpdatePlaylist(ctx context.Context, p *Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	// RemovePlaylistFromSaved pulls the playlist id from every user's
	// playlists_saved list in one bulk update.
	RemovePlaylistFromSaved(ctx context.Context, playlistID string) error

	// songs
	CreateSong(ctx context.Context, s *Song) error
	GetSong(ctx context.Context, id string) (*Song, error)
	GetSongsByIDs(ctx context.Context, ids []string) ([]Song, error)

	// genres
	CreateGenre(ctx context.Context, g *Genre) error
	GetGenre(ctx context.Context, id string) (*Genre, error)
	ListGenres(ctx context.Context) ([]Genre, error)

	// comments
	CreateComment(ctx context.Context, c *Comment) error
	ListCommentsForPlaylist(ctx context.Context, playlistID string) ([]Comment, error)
}
