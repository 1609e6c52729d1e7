package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
)

// decodeJSON decodes a request body into dest. Writes a 400 response and
// returns false when the body is malformed.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.UnmarshalRead(r.Body, dest); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return false
	}
	return true
}
