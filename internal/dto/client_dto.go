package dto

import "github.com/shopspring/decimal"

type CreerClientRequest struct {
	Nom     string  `json:"nom"     validate:"required,min=1"`
	Contact *string `json:"contact"`
	Adresse *string `json:"adresse"`
	Email   *string `json:"email"   validate:"omitempty,email"`
}

type ModifierClientRequest struct {
	Nom     *string `json:"nom"`
	Contact *string `json:"contact"`
	Adresse *string `json:"adresse"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

type ClientResponse struct {
	ID          string          `json:"id"`
	Nom         string          `json:"nom"`
	Contact     *string         `json:"contact"`
	Adresse     *string         `json:"adresse"`
	Email       *string         `json:"email"`
	TotalAchats decimal.Decimal `json:"total_achats"`
	CreatedAt   string          `json:"created_at"`
}

type ClientListResponse struct {
	Data  []ClientResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
