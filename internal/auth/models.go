package auth

// User is the public identity shape returned by auth endpoints.
type User struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse pairs a signed JWT with the user it identifies.
type TokenResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
