// Package domain contains the core entity types for the CampusConnect server.
package domain

import "time"

// Record provides common identity and timestamp fields for stored entities.
// Embed it in any domain type the store persists.
type Record struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	ID        string     `json:"id"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the underlying entity changes.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new entity.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// IsDeleted returns true if this entity has been soft-deleted.
func (r *Record) IsDeleted() bool {
	return r.DeletedAt != nil
}

// MarkDeleted marks this entity as soft-deleted by setting DeletedAt to now.
// This also bumps UpdatedAt so the deletion is visible to change consumers.
func (r *Record) MarkDeleted() {
	now := time.Now()
	r.DeletedAt = &now
	r.UpdatedAt = now
}
