package model

// Registration is the payload accepted by the registration endpoint.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// User is the account returned by the registration endpoint.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginCredentials is the payload posted to the token endpoint.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
