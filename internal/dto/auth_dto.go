package dto

// LoginRequest is the cashier PIN login payload.
type LoginRequest struct {
	UserCode string `json:"user_code" validate:"required"`
	PIN      string `json:"pin"       validate:"required,min=4,max=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // seconds
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	UserCode string  `json:"user_code"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	BranchID *string `json:"branch_id,omitempty"`
}
