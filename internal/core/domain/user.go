package domain

// User is the stored credential record. It is keyed by Username in the
// users bucket and never mutated after signup.
type User struct {
	Username     string
	PasswordHash string
}

// Profile is the public view of a User carried inside session tokens.
// It must never gain a password field.
type Profile struct {
	Username string `json:"username"`
}

// Profile strips the secret parts of the record.
func (u *User) Profile() Profile {
	return Profile{Username: u.Username}
}
