package entity

// User is the identity record returned by the backend for the signed-in account.
type User struct {
	ID        ID     `json:"id" validate:"required"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// DisplayName prefers the full name, then the username, then the email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
