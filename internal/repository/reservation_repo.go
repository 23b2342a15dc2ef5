package repository

import (
	"context"
	"time"

	"gescom/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(ctx context.Context, res *model.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	List(ctx context.Context, statut string) ([]model.Reservation, error)
	ListExpirees(ctx context.Context, maintenant time.Time) ([]model.Reservation, error)
	CountByStatut(ctx context.Context, statut string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, res *model.Reservation) error
	UpdateStatutTx(tx *gorm.DB, id uuid.UUID, statut string) error
	DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error
	DB() *gorm.DB
}

type reservationRepo struct{ db *gorm.DB }

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) DB() *gorm.DB { return r.db }

func (r *reservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *reservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var res model.Reservation
	err := r.db.WithContext(ctx).Preload("Produit").Preload("Client").First(&res, id).Error
	return &res, err
}

func (r *reservationRepo) List(ctx context.Context, statut string) ([]model.Reservation, error) {
	q := r.db.WithContext(ctx).Preload("Produit").Preload("Client")
	if statut != "" {
		q = q.Where("statut = ?", statut)
	}
	var reservations []model.Reservation
	err := q.Order("date_reservation DESC").Find(&reservations).Error
	return reservations, err
}

// ListExpirees returns pending reservations whose deadline has passed.
func (r *reservationRepo) ListExpirees(ctx context.Context, maintenant time.Time) ([]model.Reservation, error) {
	var reservations []model.Reservation
	err := r.db.WithContext(ctx).
		Preload("Produit").Preload("Client").
		Where("statut = ? AND date_limite IS NOT NULL AND date_limite < ?", model.ReservationEnAttente, maintenant).
		Order("date_limite ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) CountByStatut(ctx context.Context, statut string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).Where("statut = ?", statut).Count(&total).Error
	return total, err
}

func (r *reservationRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).Count(&total).Error
	return total, err
}

func (r *reservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *reservationRepo) UpdateStatutTx(tx *gorm.DB, id uuid.UUID, statut string) error {
	return tx.Model(&model.Reservation{}).Where("id = ?", id).Update("statut", statut).Error
}

func (r *reservationRepo) DeleteByProduitTx(tx *gorm.DB, produitID uuid.UUID) error {
	return tx.Where("produit_id = ?", produitID).Delete(&model.Reservation{}).Error
}
