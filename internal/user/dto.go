package user

// SignupRequest payload de registro.
// swagger:model SignupRequest
type SignupRequest struct {
	Name     string `json:"name"     example:"Ana"`
	Email    string `json:"email"    example:"ana@example.com"`
	Password string `json:"password" example:"secret123"`
}

// LoginRequest payload de login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"ana@example.com"`
	Password string `json:"password" example:"secret123"`
}

// LoginResponse carries the bearer token.
// swagger:model LoginResponse
type LoginResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest partial update; omitted fields are left unchanged.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"    example:"Ana María"`
	Contact *string `json:"contact,omitempty" example:"+51 999 888 777"`
	Address *string `json:"address,omitempty" example:"Av. Larco 123"`
}

// UpdateProfileResponse wraps the updated profile.
// swagger:model UpdateProfileResponse
type UpdateProfileResponse struct {
	Message string  `json:"message"`
	User    Profile `json:"user"`
}
