package api

import (
	"net/http"

	"github.com/campusconnect/campusconnect-server/internal/domain"
	"github.com/campusconnect/campusconnect-server/internal/http/response"
)

// cycleResponse reports the outcome of a full leaderboard cycle: whether
// every entry persisted, and the freshly ranked standings.
type cycleResponse struct {
	OK      bool               `json:"ok"`
	Results []domain.StatEntry `json:"results"`
}

// handleGetLeaderboard computes and returns current standings without
// persisting or broadcasting anything.
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.leaderboardService.Compute(r.Context())
	if err != nil {
		s.logger.Error("Failed to compute leaderboard", "error", err)
		response.InternalError(w, "Failed to compute leaderboard", s.logger)
		return
	}

	response.Success(w, entries, s.logger)
}

// handleRefreshLeaderboard runs a full cycle on demand. Disabled in
// production, where cycles run on the timer and on content changes only.
func (s *Server) handleRefreshLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.production {
		response.Forbidden(w, "Manual refresh is disabled in production", s.logger)
		return
	}

	s.runCycle(w, r, "manual refresh")
}

// handleUpdateLeaderboard runs a full cycle for an authenticated caller.
func (s *Server) handleUpdateLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.runCycle(w, r, "api update")
}

// runCycle performs a full cycle and responds with the ranked standings.
// Partial persistence failures are logged, never surfaced to the caller.
func (s *Server) runCycle(w http.ResponseWriter, r *http.Request, reason string) {
	result, err := s.leaderboardService.RunCycle(r.Context(), reason)
	if err != nil {
		s.logger.Error("Leaderboard cycle failed", "reason", reason, "error", err)
		response.InternalError(w, "Failed to update leaderboard", s.logger)
		return
	}

	if len(result.Failures) > 0 {
		s.logger.Warn("Leaderboard cycle had persistence failures",
			"reason", reason,
			"failed", len(result.Failures))
	}

	resp := cycleResponse{OK: result.OK, Results: result.Entries}
	if resp.Results == nil {
		resp.Results = []domain.StatEntry{}
	}

	response.Success(w, resp, s.logger)
}
