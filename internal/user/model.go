package user

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Contact      string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of a user; it never carries credentials.
// swagger:model Profile
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Contact:   u.Contact,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ProfileUpdate holds the fields to change; nil means leave as is.
type ProfileUpdate struct {
	Name    *string
	Contact *string
	Address *string
}
