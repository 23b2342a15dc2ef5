package repository

import (
	"context"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VenteRepository interface {
	CreateTx(tx *gorm.DB, v *model.Vente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error)
	List(ctx context.Context, filter dto.VenteFilter) ([]model.Vente, int64, error)
	ListBetween(ctx context.Context, debut, fin time.Time) ([]model.Vente, error)
	ListSince(ctx context.Context, depuis time.Time) ([]model.Vente, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Vente, error)
	Count(ctx context.Context) (int64, error)
	SumTotal(ctx context.Context) (decimal.Decimal, error)
	SumTotalBetween(ctx context.Context, debut, fin time.Time) (decimal.Decimal, error)
	SumTotalByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
	SumBenefices(ctx context.Context) (decimal.Decimal, error)
	DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error
	DetachClientTx(tx *gorm.DB, clientID uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type venteRepo struct{ db *gorm.DB }

func NewVenteRepository(db *gorm.DB) VenteRepository { return &venteRepo{db: db} }

func (r *venteRepo) DB() *gorm.DB { return r.db }

func (r *venteRepo) CreateTx(tx *gorm.DB, v *model.Vente) error {
	return tx.Create(v).Error
}

func (r *venteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error) {
	var v model.Vente
	err := r.db.WithContext(ctx).Preload("Produit").Preload("Client").First(&v, id).Error
	return &v, err
}

func (r *venteRepo) List(ctx context.Context, filter dto.VenteFilter) ([]model.Vente, int64, error) {
	var ventes []model.Vente
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Vente{})
	if filter.Date != "" {
		q = q.Where("DATE(date_vente) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Produit").Preload("Client").
		Order("date_vente DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventes).Error
	return ventes, total, err
}

func (r *venteRepo) ListBetween(ctx context.Context, debut, fin time.Time) ([]model.Vente, error) {
	var ventes []model.Vente
	err := r.db.WithContext(ctx).
		Preload("Produit").Preload("Client").
		Where("date_vente BETWEEN ? AND ?", debut, fin).
		Order("date_vente ASC").
		Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) ListSince(ctx context.Context, depuis time.Time) ([]model.Vente, error) {
	var ventes []model.Vente
	err := r.db.WithContext(ctx).
		Preload("Produit").
		Where("date_vente >= ?", depuis).
		Order("date_vente ASC").
		Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Vente, error) {
	var ventes []model.Vente
	err := r.db.WithContext(ctx).
		Preload("Produit").
		Where("client_id = ?", clientID).
		Order("date_vente DESC").
		Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Vente{}).Count(&total).Error
	return total, err
}

func (r *venteRepo) SumTotal(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(r.db.WithContext(ctx).Model(&model.Vente{}), "COALESCE(SUM(total), 0)")
}

func (r *venteRepo) SumTotalBetween(ctx context.Context, debut, fin time.Time) (decimal.Decimal, error) {
	return r.sum(
		r.db.WithContext(ctx).Model(&model.Vente{}).Where("date_vente BETWEEN ? AND ?", debut, fin),
		"COALESCE(SUM(total), 0)",
	)
}

func (r *venteRepo) SumTotalByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(
		r.db.WithContext(ctx).Model(&model.Vente{}).Where("client_id = ?", clientID),
		"COALESCE(SUM(total), 0)",
	)
}

// SumBenefices recomputes profit from the current purchase price; the sale
// keeps only the selling price snapshot.
func (r *venteRepo) SumBenefices(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(
		r.db.WithContext(ctx).Model(&model.Vente{}).
			Joins("JOIN produits ON produits.id = ventes.produit_id"),
		"COALESCE(SUM((ventes.prix_unitaire - produits.prix_achat) * ventes.quantite), 0)",
	)
}

func (r *venteRepo) DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error {
	return tx.Where("produit_id = ?", produitID).Delete(&model.Vente{}).Error
}

// DetachClientTx turns a client's sales into ventes directes so the client row
// can be removed without losing sales history.
func (r *venteRepo) DetachClientTx(tx *gorm.DB, clientID uuid.UUID) error {
	return tx.Model(&model.Vente{}).Where("client_id = ?", clientID).
		Update("client_id", nil).Error
}

func (r *venteRepo) sum(q *gorm.DB, expr string) (decimal.Decimal, error) {
	var s decimal.Decimal
	err := q.Select(expr).Scan(&s).Error
	return s, err
}
