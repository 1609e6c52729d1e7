package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/service"
)

// handleCreateChallenge creates a new writing challenge.
func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChallengeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	challenge, err := s.challengeService.Create(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, challenge, s.logger)
}

// handleListChallenges returns all active challenges.
func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.challengeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, challenges, s.logger)
}

// handleGetChallenge returns a challenge by ID.
func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := s.challengeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, challenge, s.logger)
}

// handleJoinChallenge adds the authenticated user to a challenge.
func (s *Server) handleJoinChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := s.challengeService.Join(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, challenge, s.logger)
}

// handleLeaveChallenge removes the authenticated user from a challenge.
func (s *Server) handleLeaveChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := s.challengeService.Leave(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, challenge, s.logger)
}

// handleDeleteChallenge removes a challenge owned by the authenticated user.
func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	if err := s.challengeService.Delete(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
