package dto

import (
	"time"

	"github.com/agrolink/marketplace-service/internal/domain"
)

// CropItemPayload mirrors a listing entry on the wire.
type CropItemPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Area        string  `json:"area,omitempty"`
	Quantity    string  `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// RegisterRequest payload for new users.
type RegisterRequest struct {
	RealName string            `json:"real_name"`
	Role     string            `json:"role"`
	Location string            `json:"location"`
	Items    []CropItemPayload `json:"items"`
}

// LoginRequest payload for login. The id is the whole credential.
type LoginRequest struct {
	ID string `json:"id"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateProfileRequest payload for profile edits.
type UpdateProfileRequest struct {
	RealName string `json:"real_name"`
	Location string `json:"location"`
}

// RatingRequest payload for rating a user.
type RatingRequest struct {
	Value   int    `json:"value"`
	Comment string `json:"comment"`
}

// SetLanguageRequest payload for the session language preference.
type SetLanguageRequest struct {
	Language string `json:"language"`
}

// RatingView is a rating as shown on a profile.
type RatingView struct {
	FromUserID string `json:"from_user_id"`
	Value      int    `json:"value"`
	Comment    string `json:"comment"`
	Timestamp  int64  `json:"timestamp"`
}

// PublicUserView is the profile as rendered to other users. The real name
// never appears here.
type PublicUserView struct {
	ID          string            `json:"id"`
	DisplayName string            `json:"display_name"`
	Role        domain.Role       `json:"role"`
	Location    string            `json:"location"`
	Items       []CropItemPayload `json:"items"`
	Ratings     []RatingView      `json:"ratings"`
	TrustScore  float64           `json:"trust_score"`
	JoinedAt    int64             `json:"joined_at"`
}

// OwnUserView is the profile as rendered to its owner, real name included.
type OwnUserView struct {
	PublicUserView
	RealName string `json:"real_name"`
}

// ToItems converts wire listings to domain items.
func ToItems(payloads []CropItemPayload) []domain.CropItem {
	items := make([]domain.CropItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, domain.CropItem{
			Name:        p.Name,
			Price:       p.Price,
			Area:        p.Area,
			Quantity:    p.Quantity,
			Description: p.Description,
		})
	}
	return items
}

// PublicUser maps a domain user to its public view.
func PublicUser(u *domain.User) PublicUserView {
	items := make([]CropItemPayload, 0, len(u.Items))
	for _, item := range u.Items {
		items = append(items, CropItemPayload{
			Name:        item.Name,
			Price:       item.Price,
			Area:        item.Area,
			Quantity:    item.Quantity,
			Description: item.Description,
		})
	}
	ratings := make([]RatingView, 0, len(u.Ratings))
	for _, r := range u.Ratings {
		ratings = append(ratings, RatingView{
			FromUserID: r.FromUserID,
			Value:      r.Value,
			Comment:    r.Comment,
			Timestamp:  r.Timestamp,
		})
	}
	return PublicUserView{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Location:    u.Location,
		Items:       items,
		Ratings:     ratings,
		TrustScore:  u.TrustScore,
		JoinedAt:    u.JoinedAt,
	}
}

// OwnUser maps a domain user to the owner-facing view.
func OwnUser(u *domain.User) OwnUserView {
	return OwnUserView{PublicUserView: PublicUser(u), RealName: u.RealName}
}
