package repository

import (
	"context"

	"gescom/internal/dto"
	"gescom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProduitRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProduitRepository interface {
	Create(ctx context.Context, p *model.Produit) error
	CreateTx(tx *gorm.DB, p *model.Produit) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produit, error)
	List(ctx context.Context, filter dto.ProduitFilter) ([]model.Produit, int64, error)
	All(ctx context.Context) ([]model.Produit, error)
	Update(ctx context.Context, p *model.Produit) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	ListStockBas(ctx context.Context) ([]model.Produit, error)

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DebiterStockTx decrements stock only when enough units remain.
	// Returns false when the guarded update matched no row.
	DebiterStockTx(tx *gorm.DB, id uuid.UUID, quantite int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produitRepo struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository { return &produitRepo{db: db} }

func (r *produitRepo) Create(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produitRepo) CreateTx(tx *gorm.DB, p *model.Produit) error {
	return tx.Create(p).Error
}

func (r *produitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *produitRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Produit, error) {
	var p model.Produit
	err := tx.First(&p, id).Error
	return &p, err
}

func (r *produitRepo) List(ctx context.Context, filter dto.ProduitFilter) ([]model.Produit, int64, error) {
	var produits []model.Produit
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produit{})
	if filter.Nom != "" {
		q = q.Where("nom ILIKE ?", "%"+filter.Nom+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nom ASC").Limit(filter.Limit).Offset(offset).Find(&produits).Error
	return produits, total, err
}

func (r *produitRepo) All(ctx context.Context) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).Order("nom ASC").Find(&produits).Error
	return produits, err
}

func (r *produitRepo) Update(ctx context.Context, p *model.Produit) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produitRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Produit{}, id).Error
}

func (r *produitRepo) ListStockBas(ctx context.Context) ([]model.Produit, error) {
	var produits []model.Produit
	err := r.db.WithContext(ctx).
		Where("stock <= seuil_alerte").
		Order("stock ASC").
		Find(&produits).Error
	return produits, err
}

func (r *produitRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produit{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *produitRepo) DebiterStockTx(tx *gorm.DB, id uuid.UUID, quantite int) (bool, error) {
	res := tx.Model(&model.Produit{}).
		Where("id = ? AND stock >= ?", id, quantite).
		Update("stock", gorm.Expr("stock - ?", quantite))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *produitRepo) DB() *gorm.DB { return r.db }
