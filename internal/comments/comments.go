// Package comments serves playlist comments. Read responses carry each
// comment's author record; a comment whose author has been deleted keeps a
// null user rather than disappearing or failing the request.
package comments

import (
	"context"
	"sort"
	"time"

	"github.com/hayley-d/Meloob-sub000/internal/legacydate"
	"github.com/hayley-d/Meloob-sub000/internal/store"
)

// Enriched is a comment joined with its author. User is nil when the
// author's id no longer resolves.
type Enriched struct {
	ID      string      `json:"id"`
	Content string      `json:"content"`
	Date    string      `json:"date"`
	User    *store.User `json:"user"`
}

// LoadForPlaylist fetches a playlist's comments, resolves the authors in one
// batch lookup and returns them newest first. Author ids that no longer
// resolve stay as nil users. The stored date strings are two-digit-year
// DD/MM/YY (older playlist data also carries DD/MM/YYYY); anything
// unparsable sorts last.
func LoadForPlaylist(ctx context.Context, st store.Store, playlistID string) ([]Enriched, error) {
	raw, err := st.ListCommentsForPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	authors, err := loadAuthors(ctx, st, raw)
	if err != nil {
		return nil, err
	}

	enriched := make([]Enriched, 0, len(raw))
	for _, c := range raw {
		enriched = append(enriched, Enriched{
			ID:      c.ID,
			Content: c.Content,
			Date:    c.Date,
			User:    authors[c.UserID],
		})
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return parseDate(enriched[i].Date).After(parseDate(enriched[j].Date))
	})

	return enriched, nil
}

// loadAuthors resolves the distinct author ids with a single bulk lookup.
// Ids missing from the result are simply absent from the map.
func loadAuthors(ctx context.Context, st store.Store, raw []store.Comment) (map[string]*store.User, error) {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			ids = append(ids, c.UserID)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := st.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	authors := make(map[string]*store.User, len(users))
	for i := range users {
		authors[users[i].ID] = &users[i]
	}
	return authors, nil
}

func parseDate(s string) time.Time {
	t, err := legacydate.Parse(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
