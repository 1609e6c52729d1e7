package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect-server/internal/http/response"
)

// handleListNotifications returns the authenticated user's inbox, newest
// first.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.notificationService.List(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, notifications, s.logger)
}

// handleMarkNotificationRead marks a single notification as read.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := s.notificationService.MarkRead(r.Context(), getUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleMarkAllNotificationsRead marks the whole inbox as read.
func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	updated, err := s.notificationService.MarkAllRead(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]int{"updated": updated}, s.logger)
}
