package dto

type TokenRequest struct {
	Email string `json:"email" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName"`
}

type RegisterResponse struct {
	Created    bool   `json:"created"`
	Message    string `json:"message,omitempty"`
	InsertedID string `json:"insertedId,omitempty"`
}

type MeRequest struct {
	Email string `json:"email" binding:"required"`
}

// UserDTO deliberately omits the internal identifier.
type UserDTO struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	Name        string `json:"name,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
