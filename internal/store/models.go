package store

import "time"

// User is a registered account. The follow graph and playlist membership
// lists live on the user document itself; the store does not enforce that
// followers/following stay symmetric — the mutation handlers do.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Password         string    `json:"-"` // bcrypt hash, never serialized
	ProfilePicture   string    `json:"profilePicture"`
	Description      string    `json:"description"`
	Followers        []string  `json:"followers"`
	Following        []string  `json:"following"`
	PlaylistsCreated []string  `json:"playlistsCreated"`
	PlaylistsSaved   []string  `json:"playlistsSaved"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Playlist references its owner, genre and songs by id only. None of the
// references are checked by the store, so any of them may dangle.
type Playlist struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CoverImage  string    `json:"coverImage"`
	DateCreated string    `json:"dateCreated"` // legacy DD/MM/YYYY or DD/MM/YY
	Genre       string    `json:"genre"`       // genre id, may dangle
	Hashtags    []string  `json:"hashtags"`
	Songs       []string  `json:"songs"` // ordered, duplicates allowed
	CreatedAt   time.Time `json:"createdAt"`
}

type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Link   string `json:"link"`
	Genre  string `json:"genre"`
}

type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment dates are stamped DD/MM/YY at creation time from the server clock.
type Comment struct {
	ID         string `json:"id"`
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
	Content    string `json:"content"`
	Date       string `json:"date"`
}
