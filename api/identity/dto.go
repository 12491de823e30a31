package identity

// AuthRequest carries the credentials of register and login requests.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse describes a registered user.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}
