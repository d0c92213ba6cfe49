package dto

// UpdateUserRoleRequest payload. Role is the numeric wire value.
type UpdateUserRoleRequest struct {
	Role int `json:"role"`
}

// ResetPasswordResponse carries the temporary password, returned exactly
// once and never stored in plaintext.
type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password"`
}
