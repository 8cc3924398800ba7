package dto

type VerificationResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}
