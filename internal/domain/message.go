package domain

// Message is a single direct message in the global append-only log. Image,
// when present, holds a text-safe (base64 data URL) encoding of the
// attachment. Read is written false and never transitioned by any operation.
type Message struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Image      string `json:"image,omitempty"`
	Timestamp  int64  `json:"timestamp"`
	Read       bool   `json:"read"`
}

// Involves reports whether the user is a party to the message.
func (m Message) Involves(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// Between reports whether the message belongs to the two-party thread of a
// and b, in either direction.
func (m Message) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// CounterpartOf returns the other party of the message from the given user's
// perspective.
func (m Message) CounterpartOf(userID string) string {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
