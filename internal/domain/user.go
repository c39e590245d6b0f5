package domain

// Role distinguishes the two marketplace sides. Every user holds exactly one
// role, fixed at registration.
type Role string

const (
	RoleProducer Role = "PRODUCER"
	RoleBuyer    Role = "BUYER"
)

// Valid reports whether the role is one of the two known values.
func (r Role) Valid() bool {
	return r == RoleProducer || r == RoleBuyer
}

// Opposite returns the counterpart role used by the matching engine.
func (r Role) Opposite() Role {
	if r == RoleProducer {
		return RoleBuyer
	}
	return RoleProducer
}

// Label returns the human-readable form used for display names.
func (r Role) Label() string {
	if r == RoleProducer {
		return "Producer"
	}
	return "Buyer"
}

// CropItem is a tradeable good embedded in a user's listing. Quantity is
// free text; no unit arithmetic is ever performed on it.
type CropItem struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Area        string  `json:"area"`
	Quantity    string  `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// Rating is feedback received from another user. FromUserID references the
// author; the rating itself belongs to the rated user.
type Rating struct {
	FromUserID string `json:"fromUserId"`
	Value      int    `json:"value"`
	Comment    string `json:"comment"`
	Timestamp  int64  `json:"timestamp"`
}

// User is the domain model for marketplace participants. RealName is private
// and never rendered to other users; DisplayName is the public pseudonym.
// TrustScore is derived from Ratings and must be recomputed in the same
// write-back whenever Ratings changes.
type User struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	RealName    string     `json:"realName"`
	Role        Role       `json:"role"`
	Location    string     `json:"location"`
	Items       []CropItem `json:"items"`
	Ratings     []Rating   `json:"ratings"`
	TrustScore  float64    `json:"trustScore"`
	JoinedAt    int64      `json:"joinedAt"`
}

// HasItemNamed reports whether the user lists an item with the exact name.
func (u User) HasItemNamed(name string) bool {
	for _, item := range u.Items {
		if item.Name == name {
			return true
		}
	}
	return false
}
