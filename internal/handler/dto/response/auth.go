package response

import "crafty-kid/internal/usecase/queries"

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
}

type CurrentUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromAuthorizedUser(v *queries.AuthorizedUserView) *CurrentUserResponse {
	return &CurrentUserResponse{
		ID:    v.ID.String(),
		Email: v.Email,
		Role:  v.Role,
	}
}
