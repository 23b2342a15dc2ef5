package model

import (
	"time"

	"github.com/google/uuid"
)

// Client identity + contact. TotalAchats is computed from the linked ventes,
// never stored.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nom       string    `gorm:"index;not null"`
	Contact   *string
	Adresse   *string
	Email     *string
	CreatedAt time.Time

	Ventes []Vente `gorm:"foreignKey:ClientID"`
}
