package domain

// Notification is a message delivered to a single user, e.g. "X started
// following you" or "X commented on your post".
type Notification struct {
	Record
	RecipientID string `json:"recipient_id"`
	SenderID    string `json:"sender_id,omitempty"`
	Message     string `json:"message"`
	URL         string `json:"url,omitempty"`
	Read        bool   `json:"read"`
}
