package api

import (
	"net/http"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// handleRegister creates a new user account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user with email and password.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleRefresh rotates a refresh token.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resp, err := s.authService.Refresh(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleLogout invalidates the caller's refresh session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID := getUserID(r.Context())

	if err := s.authService.Logout(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if s.logger != nil {
		s.logger.Info("user logged out", "user_id", userID, "email", getEmail(r.Context()))
	}

	response.NoContent(w)
}

// handleGetCurrentUser returns the authenticated user's own record.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.Get(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}
