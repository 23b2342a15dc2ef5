package service_test

// In-memory repository stubs shared by the service unit tests. Their DB()
// methods return nil, which makes runTx call the body directly without a
// transaction.

import (
	"context"
	"errors"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errNotFound = errors.New("record not found")

// ── ProduitRepository stub ───────────────────────────────────────────────────

type stubProduitRepo struct {
	produits map[uuid.UUID]*model.Produit
}

var _ repository.ProduitRepository = (*stubProduitRepo)(nil)

func newStubProduitRepo() *stubProduitRepo {
	return &stubProduitRepo{produits: make(map[uuid.UUID]*model.Produit)}
}

func (r *stubProduitRepo) Create(_ context.Context, p *model.Produit) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) CreateTx(_ *gorm.DB, p *model.Produit) error {
	return r.Create(context.Background(), p)
}

func (r *stubProduitRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produit, error) {
	p, ok := r.produits[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (r *stubProduitRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Produit, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProduitRepo) List(_ context.Context, filter dto.ProduitFilter) ([]model.Produit, int64, error) {
	var result []model.Produit
	for _, p := range r.produits {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (r *stubProduitRepo) All(_ context.Context) ([]model.Produit, error) {
	var result []model.Produit
	for _, p := range r.produits {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProduitRepo) Update(_ context.Context, p *model.Produit) error {
	r.produits[p.ID] = p
	return nil
}

func (r *stubProduitRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.produits, id)
	return nil
}

func (r *stubProduitRepo) ListStockBas(_ context.Context) ([]model.Produit, error) {
	var result []model.Produit
	for _, p := range r.produits {
		if p.EstStockBas() {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProduitRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.produits[id]
	if !ok {
		return errNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProduitRepo) DebiterStockTx(_ *gorm.DB, id uuid.UUID, quantite int) (bool, error) {
	p, ok := r.produits[id]
	if !ok {
		return false, errNotFound
	}
	if p.Stock < quantite {
		return false, nil
	}
	p.Stock -= quantite
	return true, nil
}

func (r *stubProduitRepo) DB() *gorm.DB { return nil }

// ── MouvementStockRepository stub ────────────────────────────────────────────

type stubMouvementRepo struct {
	mouvements []*model.MouvementStock
}

var _ repository.MouvementStockRepository = (*stubMouvementRepo)(nil)

func newStubMouvementRepo() *stubMouvementRepo { return &stubMouvementRepo{} }

func (r *stubMouvementRepo) Create(_ context.Context, m *model.MouvementStock) error {
	return r.CreateTx(nil, m)
}

func (r *stubMouvementRepo) CreateTx(_ *gorm.DB, m *model.MouvementStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.DateMouvement.IsZero() {
		m.DateMouvement = time.Now()
	}
	r.mouvements = append(r.mouvements, m)
	return nil
}

func (r *stubMouvementRepo) List(_ context.Context, filter dto.MouvementFilter) ([]model.MouvementStock, int64, error) {
	var result []model.MouvementStock
	for _, m := range r.mouvements {
		if filter.ProduitID != "" && m.ProduitID.String() != filter.ProduitID {
			continue
		}
		if filter.Type != "" && m.TypeMouvement != filter.Type {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

func (r *stubMouvementRepo) ListBetween(_ context.Context, debut, fin time.Time) ([]model.MouvementStock, error) {
	var result []model.MouvementStock
	for _, m := range r.mouvements {
		if !m.DateMouvement.Before(debut) && !m.DateMouvement.After(fin) {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (r *stubMouvementRepo) DeleteByProduitTx(_ *gorm.DB, produitID uuid.UUID) error {
	kept := r.mouvements[:0]
	for _, m := range r.mouvements {
		if m.ProduitID != produitID {
			kept = append(kept, m)
		}
	}
	r.mouvements = kept
	return nil
}

// ── VenteRepository stub ─────────────────────────────────────────────────────

type stubVenteRepo struct {
	ventes []*model.Vente
}

var _ repository.VenteRepository = (*stubVenteRepo)(nil)

func newStubVenteRepo() *stubVenteRepo { return &stubVenteRepo{} }

func (r *stubVenteRepo) CreateTx(_ *gorm.DB, v *model.Vente) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.DateVente.IsZero() {
		v.DateVente = time.Now()
	}
	r.ventes = append(r.ventes, v)
	return nil
}

func (r *stubVenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vente, error) {
	for _, v := range r.ventes {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errNotFound
}

func (r *stubVenteRepo) List(_ context.Context, filter dto.VenteFilter) ([]model.Vente, int64, error) {
	var result []model.Vente
	for _, v := range r.ventes {
		if filter.Date != "" && v.DateVente.Format("2006-01-02") != filter.Date {
			continue
		}
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVenteRepo) ListBetween(_ context.Context, debut, fin time.Time) ([]model.Vente, error) {
	var result []model.Vente
	for _, v := range r.ventes {
		if !v.DateVente.Before(debut) && !v.DateVente.After(fin) {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVenteRepo) ListSince(_ context.Context, depuis time.Time) ([]model.Vente, error) {
	var result []model.Vente
	for _, v := range r.ventes {
		if !v.DateVente.Before(depuis) {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVenteRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]model.Vente, error) {
	var result []model.Vente
	for _, v := range r.ventes {
		if v.ClientID != nil && *v.ClientID == clientID {
			result = append(result, *v)
		}
	}
	return result, nil
}

func (r *stubVenteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ventes)), nil
}

func (r *stubVenteRepo) SumTotal(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventes {
		total = total.Add(v.Total)
	}
	return total, nil
}

func (r *stubVenteRepo) SumTotalBetween(ctx context.Context, debut, fin time.Time) (decimal.Decimal, error) {
	ventes, _ := r.ListBetween(ctx, debut, fin)
	total := decimal.Zero
	for i := range ventes {
		total = total.Add(ventes[i].Total)
	}
	return total, nil
}

func (r *stubVenteRepo) SumTotalByClient(_ context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventes {
		if v.ClientID != nil && *v.ClientID == clientID {
			total = total.Add(v.Total)
		}
	}
	return total, nil
}

func (r *stubVenteRepo) SumBenefices(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventes {
		total = total.Add(v.Benefice())
	}
	return total, nil
}

func (r *stubVenteRepo) DeleteByProduitTx(_ *gorm.DB, produitID uuid.UUID) error {
	kept := r.ventes[:0]
	for _, v := range r.ventes {
		if v.ProduitID != produitID {
			kept = append(kept, v)
		}
	}
	r.ventes = kept
	return nil
}

func (r *stubVenteRepo) DetachClientTx(_ *gorm.DB, clientID uuid.UUID) error {
	for _, v := range r.ventes {
		if v.ClientID != nil && *v.ClientID == clientID {
			v.ClientID = nil
		}
	}
	return nil
}

func (r *stubVenteRepo) DB() *gorm.DB { return nil }

// ── ReservationRepository stub ───────────────────────────────────────────────

type stubReservationRepo struct {
	reservations map[uuid.UUID]*model.Reservation
}

var _ repository.ReservationRepository = (*stubReservationRepo)(nil)

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{reservations: make(map[uuid.UUID]*model.Reservation)}
}

func (r *stubReservationRepo) Create(_ context.Context, res *model.Reservation) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.DateReservation.IsZero() {
		res.DateReservation = time.Now()
	}
	r.reservations[res.ID] = res
	return nil
}

func (r *stubReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, errNotFound
	}
	return res, nil
}

func (r *stubReservationRepo) List(_ context.Context, statut string) ([]model.Reservation, error) {
	var result []model.Reservation
	for _, res := range r.reservations {
		if statut != "" && res.Statut != statut {
			continue
		}
		result = append(result, *res)
	}
	return result, nil
}

func (r *stubReservationRepo) ListExpirees(_ context.Context, maintenant time.Time) ([]model.Reservation, error) {
	var result []model.Reservation
	for _, res := range r.reservations {
		if res.Statut == model.ReservationEnAttente && res.DateLimite != nil && res.DateLimite.Before(maintenant) {
			result = append(result, *res)
		}
	}
	return result, nil
}

func (r *stubReservationRepo) CountByStatut(_ context.Context, statut string) (int64, error) {
	var n int64
	for _, res := range r.reservations {
		if res.Statut == statut {
			n++
		}
	}
	return n, nil
}

func (r *stubReservationRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.reservations)), nil
}

func (r *stubReservationRepo) Update(_ context.Context, res *model.Reservation) error {
	r.reservations[res.ID] = res
	return nil
}

func (r *stubReservationRepo) UpdateStatutTx(_ *gorm.DB, id uuid.UUID, statut string) error {
	res, ok := r.reservations[id]
	if !ok {
		return errNotFound
	}
	res.Statut = statut
	return nil
}

func (r *stubReservationRepo) DeleteByProduitTx(_ *gorm.DB, produitID uuid.UUID) error {
	for id, res := range r.reservations {
		if res.ProduitID == produitID {
			delete(r.reservations, id)
		}
	}
	return nil
}

func (r *stubReservationRepo) DB() *gorm.DB { return nil }

// ── LivraisonRepository stub ─────────────────────────────────────────────────

type stubLivraisonRepo struct {
	livraisons map[uuid.UUID]*model.Livraison
}

var _ repository.LivraisonRepository = (*stubLivraisonRepo)(nil)

func newStubLivraisonRepo() *stubLivraisonRepo {
	return &stubLivraisonRepo{livraisons: make(map[uuid.UUID]*model.Livraison)}
}

func (r *stubLivraisonRepo) Create(_ context.Context, l *model.Livraison) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.livraisons[l.ID] = l
	return nil
}

func (r *stubLivraisonRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Livraison, error) {
	l, ok := r.livraisons[id]
	if !ok {
		return nil, errNotFound
	}
	return l, nil
}

func (r *stubLivraisonRepo) List(_ context.Context, statut string) ([]model.Livraison, error) {
	var result []model.Livraison
	for _, l := range r.livraisons {
		if statut != "" && l.Statut != statut {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (r *stubLivraisonRepo) CountByStatut(_ context.Context, statut string) (int64, error) {
	var n int64
	for _, l := range r.livraisons {
		if l.Statut == statut {
			n++
		}
	}
	return n, nil
}

func (r *stubLivraisonRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.livraisons)), nil
}

func (r *stubLivraisonRepo) Update(_ context.Context, l *model.Livraison) error {
	r.livraisons[l.ID] = l
	return nil
}

// ── ClientRepository stub ────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errNotFound
	}
	return c, nil
}

func (r *stubClientRepo) List(_ context.Context, nom string, page, limit int) ([]model.Client, int64, error) {
	var result []model.Client
	for _, c := range r.clients {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *model.Client) error {
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}
