package domain

// UserSummary is the identity record returned by the rental API and persisted
// alongside the session token. It carries everything the shell needs to render
// the navigation: display name, role flag, and avatar.
type UserSummary struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// DisplayName returns the name shown next to the avatar in the shell.
func (u UserSummary) DisplayName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Session is the authenticated state derived from the persisted token and
// user record. Token and User are consistent: both set or both zero — a
// half-present pair is treated as corrupt and cleared by the session store.
type Session struct {
	Token       string
	User        *UserSummary
	UnreadCount int
}

// LoggedIn reports whether the session carries a full identity.
func (s Session) LoggedIn() bool {
	return s.Token != "" && s.User != nil
}

// IsAdmin reports whether the session belongs to an admin identity.
func (s Session) IsAdmin() bool {
	return s.LoggedIn() && s.User.IsAdmin
}
