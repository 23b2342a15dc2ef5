package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UtilisateurResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nom      string `json:"nom"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	TokenType   string              `json:"token_type"`
	ExpiresIn   int                 `json:"expires_in"`
	User        UtilisateurResponse `json:"user"`
}
