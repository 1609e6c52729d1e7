package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// handleCreatePost creates a new post for the authenticated user.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePostRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	post, err := s.postService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, post, s.logger)
}

// handleGetPost returns a post by ID.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.postService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, post, s.logger)
}

// handleGetPostBySlug returns a post by its URL slug.
func (s *Server) handleGetPostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := s.postService.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, post, s.logger)
}

// handleUpdatePost edits a post owned by the authenticated user.
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePostRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	post, err := s.postService.Update(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, post, s.logger)
}

// handleDeletePost removes a post owned by the authenticated user.
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.postService.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
