package repository

import (
	"context"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MouvementStockRepository interface {
	Create(ctx context.Context, m *model.MouvementStock) error
	CreateTx(tx *gorm.DB, m *model.MouvementStock) error
	List(ctx context.Context, filter dto.MouvementFilter) ([]model.MouvementStock, int64, error)
	ListBetween(ctx context.Context, debut, fin time.Time) ([]model.MouvementStock, error)
	DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error
}

type mouvementStockRepo struct{ db *gorm.DB }

func NewMouvementStockRepository(db *gorm.DB) MouvementStockRepository {
	return &mouvementStockRepo{db: db}
}

func (r *mouvementStockRepo) Create(ctx context.Context, m *model.MouvementStock) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mouvementStockRepo) CreateTx(tx *gorm.DB, m *model.MouvementStock) error {
	return tx.Create(m).Error
}

func (r *mouvementStockRepo) List(ctx context.Context, filter dto.MouvementFilter) ([]model.MouvementStock, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MouvementStock{}).
		Preload("Produit")
	if filter.ProduitID != "" {
		q = q.Where("produit_id = ?", filter.ProduitID)
	}
	if filter.Type != "" {
		q = q.Where("type_mouvement = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var mouvements []model.MouvementStock
	err := q.Order("date_mouvement DESC").Offset(offset).Limit(filter.Limit).Find(&mouvements).Error
	return mouvements, total, err
}

func (r *mouvementStockRepo) ListBetween(ctx context.Context, debut, fin time.Time) ([]model.MouvementStock, error) {
	var mouvements []model.MouvementStock
	err := r.db.WithContext(ctx).
		Preload("Produit").
		Where("date_mouvement BETWEEN ? AND ?", debut, fin).
		Order("date_mouvement ASC").
		Find(&mouvements).Error
	return mouvements, err
}

func (r *mouvementStockRepo) DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error {
	return tx.Where("produit_id = ?", produitID).Delete(&model.MouvementStock{}).Error
}
