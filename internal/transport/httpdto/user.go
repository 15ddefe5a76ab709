package httpdto

// RegisterRequest is used for POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is used for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is used for PUT /users/me
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// ProfileImageResponse is returned after a profile image upload
type ProfileImageResponse struct {
	ImageURL string `json:"image_url"`
}
