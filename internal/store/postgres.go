package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBOps is the subset of pgxpool.Pool methods the store uses.
// It lets tests inject pgxmock instead of a live pool.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresStore struct {
	db DBOps
}

func NewPostgresStore(db DBOps) *PostgresStore {
	return &PostgresStore{db: db}
}

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	// References between collections are TEXT on purpose: the original data
	// store had no referential integrity, and the aggregation layer is built
	// to tolerate dangling ids. Do not add foreign keys here.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users(
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			profile_picture TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			followers jsonb NOT NULL DEFAULT '[]'::jsonb,
			following jsonb NOT NULL DEFAULT '[]'::jsonb,
			playlists_created jsonb NOT NULL DEFAULT '[]'::jsonb,
			playlists_saved jsonb NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS playlists(
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			date_created TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			hashtags jsonb NOT NULL DEFAULT '[]'::jsonb,
			songs jsonb NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS songs(
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT NOT NULL,
			link TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS genres(
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS comments(
			id TEXT PRIMARY KEY,
			playlist_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			content TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_playlist ON comments(playlist_id)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Printf("meloob: migrate: %v", err)
			return err
		}
	}
	return nil
}

func marshalIDs(ids []string) []byte {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return b
}

func unmarshalIDs(raw []byte) []string {
	var ids []string
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &ids)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- users ---

const userColumns = `id, username, email, password, profile_picture, description,
	followers, following, playlists_created, playlists_saved, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var followers, following, created, saved []byte
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.ProfilePicture, &u.Description,
		&followers, &following, &created, &saved, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.Followers = unmarshalIDs(followers)
	u.Following = unmarshalIDs(following)
	u.PlaylistsCreated = unmarshalIDs(created)
	u.PlaylistsSaved = unmarshalIDs(saved)
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users(id, username, email, password, profile_picture, description,
			followers, following, playlists_created, playlists_saved)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, u.ID, u.Username, u.Email, u.Password, u.ProfilePicture, u.Description,
		marshalIDs(u.Followers), marshalIDs(u.Following),
		marshalIDs(u.PlaylistsCreated), marshalIDs(u.PlaylistsSaved))
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) GetUsersByIDs(ctx context.Context, ids []string) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]User, error) {
	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, u *User) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET username = $2, profile_picture = $3, description = $4
		WHERE id = $1
	`, u.ID, u.Username, u.ProfilePicture, u.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateUserRelations(ctx context.Context, u *User) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET followers = $2, following = $3,
			playlists_created = $4, playlists_saved = $5
		WHERE id = $1
	`, u.ID, marshalIDs(u.Followers), marshalIDs(u.Following),
		marshalIDs(u.PlaylistsCreated), marshalIDs(u.PlaylistsSaved))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- playlists ---

const playlistColumns = `id, user_id, name, description, cover_image, date_created,
	genre, hashtags, songs, created_at`

func scanPlaylist(row pgx.Row) (*Playlist, error) {
	var p Playlist
	var hashtags, songs []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.CoverImage, &p.DateCreated,
		&p.Genre, &hashtags, &songs, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Hashtags = unmarshalIDs(hashtags)
	p.Songs = unmarshalIDs(songs)
	return &p, nil
}

func (s *PostgresStore) CreatePlaylist(ctx context.Context, p *Playlist) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO playlists(id, user_id, name, description, cover_image,
			date_created, genre, hashtags, songs)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, p.ID, p.UserID, p.Name, p.Description, p.CoverImage,
		p.DateCreated, p.Genre, marshalIDs(p.Hashtags), marshalIDs(p.Songs))
	return err
}

func (s *PostgresStore) GetPlaylist(ctx context.Context, id string) (*Playlist, error) {
	return scanPlaylist(s.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id))
}

func (s *PostgresStore) GetPlaylistsByIDs(ctx context.Context, ids []string) ([]Playlist, error) {
	rows, err := s.db.Query(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaylists(rows)
}

func (s *PostgresStore) ListPlaylists(ctx context.Context) ([]Playlist, error) {
	rows, err := s.db.Query(ctx, `SELECT `+playlistColumns+` FROM playlists ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlaylists(rows)
}

func collectPlaylists(rows pgx.Rows) ([]Playlist, error) {
	playlists := []Playlist{}
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (s *PostgresStore) UpdatePlaylist(ctx context.Context, p *Playlist) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE playlists SET name = $2, description = $3, cover_image = $4,
			genre = $5, hashtags = $6, songs = $7
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.CoverImage,
		p.Genre, marshalIDs(p.Hashtags), marshalIDs(p.Songs))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RemovePlaylistFromSaved(ctx context.Context, playlistID string) error {
	// jsonb `-` removes every element equal to the given string; the `?`
	// filter keeps the update off rows that never saved this playlist.
	_, err := s.db.Exec(ctx, `
		UPDATE users SET playlists_saved = playlists_saved - $1
		WHERE playlists_saved ? $1
	`, playlistID)
	return err
}

// --- songs ---

func (s *PostgresStore) CreateSong(ctx context.Context, song *Song) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO songs(id, title, artist, link, genre)
		VALUES($1,$2,$3,$4,$5)
	`, song.ID, song.Title, song.Artist, song.Link, song.Genre)
	return err
}

func (s *PostgresStore) GetSong(ctx context.Context, id string) (*Song, error) {
	var song Song
	err := s.db.QueryRow(ctx, `
		SELECT id, title, artist, link, genre FROM songs WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Artist, &song.Link, &song.Genre)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *PostgresStore) GetSongsByIDs(ctx context.Context, ids []string) ([]Song, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, artist, link, genre FROM songs WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := []Song{}
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Link, &song.Genre); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return songs, nil
}

// --- genres ---

func (s *PostgresStore) CreateGenre(ctx context.Context, g *Genre) error {
	_, err := s.db.Exec(ctx, `INSERT INTO genres(id, name) VALUES($1,$2)`, g.ID, g.Name)
	return err
}

func (s *PostgresStore) GetGenre(ctx context.Context, id string) (*Genre, error) {
	var g Genre
	err := s.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *PostgresStore) ListGenres(ctx context.Context) ([]Genre, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := []Genre{}
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

// --- comments ---

func (s *PostgresStore) CreateComment(ctx context.Context, c *Comment) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO comments(id, playlist_id, user_id, content, date)
		VALUES($1,$2,$3,$4,$5)
	`, c.ID, c.PlaylistID, c.UserID, c.Content, c.Date)
	return err
}

func (s *PostgresStore) ListCommentsForPlaylist(ctx context.Context, playlistID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, playlist_id, user_id, content, date
		FROM comments WHERE playlist_id = $1
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PlaylistID, &c.UserID, &c.Content, &c.Date); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}
