package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hayley-d/Meloob-sub000/internal/store"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("meloob: list users: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: get user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Username       *string `json:"username"`
		ProfilePicture *string `json:"profilePicture"`
		Description    *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: update user load: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if body.Username != nil {
		name := strings.TrimSpace(*body.Username)
		if name == "" {
			writeError(w, http.StatusBadRequest, "username must not be empty")
			return
		}
		user.Username = name
	}
	if body.ProfilePicture != nil {
		user.ProfilePicture = *body.ProfilePicture
	}
	if body.Description != nil {
		user.Description = *body.Description
	}

	if err := s.store.UpdateUserProfile(r.Context(), user); err != nil {
		log.Printf("meloob: update user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleFollow adds the follow edge in both directions: the target lands in
// the follower's following list and the follower in the target's followers
// list. Each side is written independently; a crash between the two writes
// leaves the edge half-applied, matching the legacy behaviour. Repeated
// calls are idempotent.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	followerID := chi.URLParam(r, "id")

	var body struct {
		FollowedUserID string `json:"followedUserId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.FollowedUserID) == "" {
		writeError(w, http.StatusBadRequest, "followedUserId is required")
		return
	}
	followedID := strings.TrimSpace(body.FollowedUserID)

	follower, err := s.store.GetUser(ctx, followerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: follow load follower: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// A self-follow touches a single document. Both arrays must land in one
	// write: two writes of the same row would each start from the pre-write
	// copy and the second would undo the first.
	if followedID == follower.ID {
		follower.Following = appendUnique(follower.Following, follower.ID)
		follower.Followers = appendUnique(follower.Followers, follower.ID)
		if err := s.store.UpdateUserRelations(ctx, follower); err != nil {
			log.Printf("meloob: follow update self: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.events.Publish(ctx, "user.followed", map[string]any{
			"userId":         follower.ID,
			"followedUserId": follower.ID,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"user":         follower,
			"followedUser": follower,
		})
		return
	}

	followed, err := s.store.GetUser(ctx, followedID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "followed user not found")
			return
		}
		log.Printf("meloob: follow load followed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	follower.Following = appendUnique(follower.Following, followed.ID)
	if err := s.store.UpdateUserRelations(ctx, follower); err != nil {
		log.Printf("meloob: follow update follower: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	followed.Followers = appendUnique(followed.Followers, follower.ID)
	if err := s.store.UpdateUserRelations(ctx, followed); err != nil {
		log.Printf("meloob: follow update followed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.events.Publish(ctx, "user.followed", map[string]any{
		"userId":         follower.ID,
		"followedUserId": followed.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         follower,
		"followedUser": followed,
	})
}

// handleUnfollow is the structural inverse of handleFollow: the path names
// the followed user and the follower whose edge is being removed.
func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	followedID := chi.URLParam(r, "userId")
	followerID := chi.URLParam(r, "followerId")

	followed, err := s.store.GetUser(ctx, followedID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: unfollow load followed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Same single-document rule as the self-follow in handleFollow.
	if followerID == followed.ID {
		followed.Following = remove(followed.Following, followed.ID)
		followed.Followers = remove(followed.Followers, followed.ID)
		if err := s.store.UpdateUserRelations(ctx, followed); err != nil {
			log.Printf("meloob: unfollow update self: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.events.Publish(ctx, "user.unfollowed", map[string]any{
			"userId":         followed.ID,
			"followedUserId": followed.ID,
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"user":         followed,
			"followerUser": followed,
		})
		return
	}

	follower, err := s.store.GetUser(ctx, followerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "follower not found")
			return
		}
		log.Printf("meloob: unfollow load follower: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	follower.Following = remove(follower.Following, followed.ID)
	if err := s.store.UpdateUserRelations(ctx, follower); err != nil {
		log.Printf("meloob: unfollow update follower: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	followed.Followers = remove(followed.Followers, follower.ID)
	if err := s.store.UpdateUserRelations(ctx, followed); err != nil {
		log.Printf("meloob: unfollow update followed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.events.Publish(ctx, "user.unfollowed", map[string]any{
		"userId":         follower.ID,
		"followedUserId": followed.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":         followed,
		"followerUser": follower,
	})
}

// handleSavePlaylist toggles the playlist id in the user's saved list with
// one read-modify-write of the user document. Two concurrent toggles can
// race (last writer wins); there is no version check.
func (s *Server) handleSavePlaylist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "userId")

	var body struct {
		PlaylistID string `json:"playlistId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.PlaylistID) == "" {
		writeError(w, http.StatusBadRequest, "playlistId is required")
		return
	}
	playlistID := strings.TrimSpace(body.PlaylistID)

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		log.Printf("meloob: save playlist load user: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if contains(user.PlaylistsSaved, playlistID) {
		user.PlaylistsSaved = remove(user.PlaylistsSaved, playlistID)
	} else {
		user.PlaylistsSaved = append(user.PlaylistsSaved, playlistID)
	}

	if err := s.store.UpdateUserRelations(ctx, user); err != nil {
		log.Printf("meloob: save playlist update: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	saved := contains(user.PlaylistsSaved, playlistID)
	eventType := "playlist.unsaved"
	if saved {
		eventType = "playlist.saved"
	}
	s.events.Publish(ctx, eventType, map[string]any{
		"userId":     user.ID,
		"playlistId": playlistID,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}
