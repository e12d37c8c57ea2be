package httpdto

type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse answers POST /signup and POST /login.
type AuthResponse struct {
	Success  bool    `json:"success"`
	UserData UserDTO `json:"userData"`
	Token    string  `json:"token"`
	Message  string  `json:"message,omitempty"`
}
