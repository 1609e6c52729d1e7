package api

import (
	"net/http"
	"strconv"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
	"github.com/campusconnect/campusconnect-server/internal/search"
)

// handleSearchPosts runs a full-text search over published posts.
func (s *Server) handleSearchPosts(w http.ResponseWriter, r *http.Request) {
	params := search.DefaultParams()
	params.Query = r.URL.Query().Get("q")
	params.AuthorID = r.URL.Query().Get("author")
	params.Mood = r.URL.Query().Get("mood")

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			params.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	result, err := s.searchIndex.Search(r.Context(), params)
	if err != nil {
		s.logger.Error("Search failed", "query", params.Query, "error", err)
		response.InternalError(w, "Search failed", s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
