package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// publicUser strips private fields from a user for public profile views.
type publicUser struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	ProfileImage   string `json:"profile_image"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
}

// handleGetUser returns a user's public profile.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, publicUser{
		ID:             user.ID,
		Name:           user.Name,
		Bio:            user.Bio,
		ProfileImage:   user.ProfileImage,
		FollowerCount:  len(user.Followers),
		FollowingCount: len(user.Following),
	}, s.logger)
}

// handleGetUserPosts returns a user's posts.
func (s *Server) handleGetUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.postService.ListByAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, posts, s.logger)
}

// handleUpdateProfile edits the authenticated user's profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleAddBookmark adds a bookmark to the authenticated user's profile.
func (s *Server) handleAddBookmark(w http.ResponseWriter, r *http.Request) {
	var req service.AddBookmarkRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	bookmark, err := s.userService.AddBookmark(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, bookmark, s.logger)
}

// handleRemoveBookmark deletes a bookmark from the authenticated user's
// profile.
func (s *Server) handleRemoveBookmark(w http.ResponseWriter, r *http.Request) {
	err := s.userService.RemoveBookmark(r.Context(), getUserID(r.Context()), chi.URLParam(r, "bookmarkID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleFollow makes the authenticated user follow the target user.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.Follow(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleUnfollow removes a follow relationship.
func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.Unfollow(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
