package repository

import (
	"context"

	"gescom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LivraisonRepository interface {
	Create(ctx context.Context, l *model.Livraison) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Livraison, error)
	List(ctx context.Context, statut string) ([]model.Livraison, error)
	CountByStatut(ctx context.Context, statut string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, l *model.Livraison) error
}

type livraisonRepo struct{ db *gorm.DB }

func NewLivraisonRepository(db *gorm.DB) LivraisonRepository { return &livraisonRepo{db: db} }

func (r *livraisonRepo) Create(ctx context.Context, l *model.Livraison) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *livraisonRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Livraison, error) {
	var l model.Livraison
	err := r.db.WithContext(ctx).Preload("Client").First(&l, id).Error
	return &l, err
}

func (r *livraisonRepo) List(ctx context.Context, statut string) ([]model.Livraison, error) {
	q := r.db.WithContext(ctx).Preload("Client")
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var livraisons []model.Livraison
	err := q.Order("created_at DESC").Find(&livraisons).Error
	return livraisons, err
}

func (r *livraisonRepo) CountByStatut(ctx context.Context, statut string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Livraison{}).Where("statut = ?", statut).Count(&total).Error
	return total, err
}

func (r *livraisonRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Livraison{}).Count(&total).Error
	return total, err
}

func (r *livraisonRepo) Update(ctx context.Context, l *model.Livraison) error {
	return r.db.WithContext(ctx).Save(l).Error
}
