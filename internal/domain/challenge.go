package domain

// Challenge is a writing challenge users can join.
type Challenge struct {
	Record
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	AuthorID     string   `json:"author_id"`
	Participants []string `json:"participants"` // User IDs who joined
}

// HasParticipant reports whether the given user has joined the challenge.
func (c *Challenge) HasParticipant(userID string) bool {
	for _, id := range c.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Join adds a participant. Returns true if the list changed.
func (c *Challenge) Join(userID string) bool {
	if c.HasParticipant(userID) {
		return false
	}
	c.Participants = append(c.Participants, userID)
	return true
}

// Leave removes a participant. Returns true if the list changed.
func (c *Challenge) Leave(userID string) bool {
	for i, id := range c.Participants {
		if id == userID {
			c.Participants = append(c.Participants[:i], c.Participants[i+1:]...)
			return true
		}
	}
	return false
}
