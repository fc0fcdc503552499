package domain

// Profile is the authorization level of a logged-in user.
type Profile string

// Profiles.
const (
	ProfileAdmin Profile = "admin"
	ProfileUser  Profile = "user"
)

// User is the identity returned by a successful login.
type User struct {
	CPF     string  `json:"cpf"`
	Name    string  `json:"name"`
	Profile Profile `json:"profile"`
}

// IsAdmin reports whether the user may manage targets.
func (u *User) IsAdmin() bool {
	return u.Profile == ProfileAdmin
}
