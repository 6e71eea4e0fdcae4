package models

// RegisterPayload is the profile data transmitted to the registration
// endpoint. Confirmation passwords are stripped before this type is
// built.
type RegisterPayload struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Password string   `json:"password"`
	Address  *Address `json:"address,omitempty"`
}

// ProfilePatch carries the fields of a profile update. Empty fields
// are omitted from the wire payload.
type ProfilePatch struct {
	Name     string   `json:"name,omitempty"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Password string   `json:"password,omitempty"`
	Address  *Address `json:"address,omitempty"`
}
