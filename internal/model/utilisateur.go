package model

import (
	"time"

	"github.com/google/uuid"
)

type Utilisateur struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nom          string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Actif        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
}

func (Utilisateur) TableName() string { return "utilisateurs" }
