package model

import "time"

// TokenPair holds the access/refresh JWT pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Session describes the locally stored credentials. ExpiresAt is the zero
// time when the access token carries no readable expiry.
type Session struct {
	LoggedIn   bool
	HasRefresh bool
	UserID     string
	ExpiresAt  time.Time
	Expired    bool
}
