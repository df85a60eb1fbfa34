package playlists

import (
	"context"
	"errors"

	"github.com/hayley-d/Meloob-sub000/internal/comments"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

// UnknownGenre is substituted whenever a playlist's genre id does not
// resolve. A deleted genre must never break the playlist view.
const UnknownGenre = "Unknown Genre"

// DetailView is the composed read model for one playlist: playlist fields,
// resolved genre name, the owner's full record and author-enriched
// comments, newest first. User is nil when the owner no longer exists.
type DetailView struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CoverImage  string              `json:"coverImage"`
	DateCreated string              `json:"dateCreated"`
	Genre       string              `json:"genre"`
	Hashtags    []string            `json:"hashtags"`
	Songs       []string            `json:"songs"`
	User        *store.User         `json:"user"`
	Comments    []comments.Enriched `json:"comments"`
}

// aggregateDetail assembles the whole view before returning. A missing
// playlist is store.ErrNotFound; a missing genre or owner is tolerated and
// soft-resolved; any store failure aborts with no partial result.
func (s *Server) aggregateDetail(ctx context.Context, playlistID string) (*DetailView, error) {
	p, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	genreName := UnknownGenre
	if p.Genre != "" {
		genre, err := s.store.GetGenre(ctx, p.Genre)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if genre != nil {
			genreName = genre.Name
		}
	}

	owner, err := s.store.GetUser(ctx, p.UserID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	enriched, err := comments.LoadForPlaylist(ctx, s.store, p.ID)
	if err != nil {
		return nil, err
	}

	return &DetailView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CoverImage:  p.CoverImage,
		DateCreated: p.DateCreated,
		Genre:       genreName,
		Hashtags:    p.Hashtags,
		Songs:       p.Songs,
		User:        owner,
		Comments:    enriched,
	}, nil
}
