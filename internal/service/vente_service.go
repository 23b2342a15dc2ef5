package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cacheKeyStatsFinancieres = "stats:financieres"
	cacheTTLStats            = 60 * time.Second
)

type VenteService interface {
	CreerVente(ctx context.Context, req dto.CreerVenteRequest) (*dto.VenteResponse, error)
	// CreerVenteTx runs the sale inside an outer transaction — used by the
	// reservation confirmation flow.
	CreerVenteTx(tx *gorm.DB, produitID uuid.UUID, clientID *uuid.UUID, quantite int, motif string) (*model.Vente, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error)
	ListerVentes(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error)
	StatistiquesFinancieres(ctx context.Context) (*dto.StatistiquesFinancieresResponse, error)
	StatistiquesParPeriode(ctx context.Context, periode string) ([]dto.StatistiquePeriode, error)
}

type venteService struct {
	ventes  repository.VenteRepository
	clients repository.ClientRepository
	stock   StockService
	rdb     *redis.Client
}

func NewVenteService(
	ventes repository.VenteRepository,
	clients repository.ClientRepository,
	stock StockService,
	rdb *redis.Client,
) VenteService {
	return &venteService{ventes: ventes, clients: clients, stock: stock, rdb: rdb}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// invaliderStatsCache drops the cached financial statistics. Best effort: a
// Redis outage never fails the write that triggered the invalidation.
func invaliderStatsCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, cacheKeyStatsFinancieres).Err(); err != nil {
		log.Warn().Err(err).Msg("invalidation du cache stats échouée")
	}
}

// CreerVente registers a sale: price snapshot, guarded stock debit and ledger
// row, all in one transaction.
func (s *venteService) CreerVente(ctx context.Context, req dto.CreerVenteRequest) (*dto.VenteResponse, error) {
	produitID, err := uuid.Parse(req.ProduitID)
	if err != nil {
		return nil, fmt.Errorf("produit_id invalide: %w", err)
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		cid, err := uuid.Parse(*req.ClientID)
		if err != nil {
			return nil, fmt.Errorf("client_id invalide: %w", err)
		}
		if _, err := s.clients.FindByID(ctx, cid); err != nil {
			return nil, ErrIntrouvable
		}
		clientID = &cid
	}

	var vente *model.Vente
	txErr := runTx(ctx, s.ventes.DB(), func(tx *gorm.DB) error {
		v, err := s.CreerVenteTx(tx, produitID, clientID, req.Quantite, "Vente")
		if err != nil {
			return err
		}
		vente = v
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	invaliderStatsCache(ctx, s.rdb)
	return venteToResponse(vente), nil
}

func (s *venteService) CreerVenteTx(tx *gorm.DB, produitID uuid.UUID, clientID *uuid.UUID, quantite int, motif string) (*model.Vente, error) {
	// The ledger debits stock and rejects oversell before the sale row exists.
	mouvement, err := s.stock.AjouterMouvementTx(tx, produitID, model.TypeSortie, quantite, motif)
	if err != nil {
		return nil, err
	}

	p := mouvement.Produit
	vente := &model.Vente{
		ProduitID:    produitID,
		ClientID:     clientID,
		Quantite:     quantite,
		PrixUnitaire: p.PrixUnitaire,
		Total:        p.PrixUnitaire.Mul(decimal.NewFromInt(int64(quantite))),
	}
	if err := s.ventes.CreateTx(tx, vente); err != nil {
		return nil, err
	}
	vente.Produit = p
	return vente, nil
}

func (s *venteService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error) {
	vente, err := s.ventes.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	return venteToResponse(vente), nil
}

func (s *venteService) ListerVentes(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventes, total, err := s.ventes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VenteResponse, 0, len(ventes))
	for i := range ventes {
		items = append(items, *venteToResponse(&ventes[i]))
	}
	return &dto.VenteListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// StatistiquesFinancieres aggregates revenue and profit. Served from a 60s
// Redis cache when available; writes invalidate it.
func (s *venteService) StatistiquesFinancieres(ctx context.Context) (*dto.StatistiquesFinancieresResponse, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKeyStatsFinancieres).Bytes(); err == nil {
			var cached dto.StatistiquesFinancieresResponse
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	totalVentes, err := s.ventes.SumTotal(ctx)
	if err != nil {
		return nil, err
	}
	totalBenefices, err := s.ventes.SumBenefices(ctx)
	if err != nil {
		return nil, err
	}
	nombre, err := s.ventes.Count(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	debutJour := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	ventesJour, err := s.ventes.SumTotalBetween(ctx, debutJour, now)
	if err != nil {
		return nil, err
	}
	debutMois := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	ventesMois, err := s.ventes.SumTotalBetween(ctx, debutMois, now)
	if err != nil {
		return nil, err
	}

	moyenne := decimal.Zero
	if nombre > 0 {
		moyenne = totalVentes.Div(decimal.NewFromInt(nombre)).Round(2)
	}

	stats := &dto.StatistiquesFinancieresResponse{
		TotalVentes:    totalVentes,
		TotalBenefices: totalBenefices,
		NombreVentes:   nombre,
		VentesJour:     ventesJour,
		VentesMois:     ventesMois,
		MoyenneVente:   moyenne,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, cacheKeyStatsFinancieres, raw, cacheTTLStats).Err(); err != nil {
				log.Warn().Err(err).Msg("mise en cache des stats échouée")
			}
		}
	}
	return stats, nil
}

// StatistiquesParPeriode buckets sales into calendar periods:
// journalier = last 7 days, hebdomadaire = last 8 ISO weeks,
// mensuel = last 12 months. Buckets come back chronologically ascending.
func (s *venteService) StatistiquesParPeriode(ctx context.Context, periode string) ([]dto.StatistiquePeriode, error) {
	now := time.Now()
	minuit := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var depuis time.Time
	var cle func(time.Time) string
	switch periode {
	case "journalier":
		depuis = minuit.AddDate(0, 0, -6)
		cle = func(t time.Time) string { return t.Format("2006-01-02") }
	case "hebdomadaire":
		depuis = minuit.AddDate(0, 0, -7*8)
		cle = func(t time.Time) string {
			annee, semaine := t.ISOWeek()
			return fmt.Sprintf("%d-W%02d", annee, semaine)
		}
	case "mensuel":
		depuis = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
		cle = func(t time.Time) string { return t.Format("2006-01") }
	default:
		return nil, fmt.Errorf("periode inconnue: %s", periode)
	}

	ventes, err := s.ventes.ListSince(ctx, depuis)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.StatistiquePeriode)
	for i := range ventes {
		v := &ventes[i]
		k := cle(v.DateVente)
		b, ok := buckets[k]
		if !ok {
			b = &dto.StatistiquePeriode{Periode: k, TotalVentes: decimal.Zero}
			buckets[k] = b
		}
		b.TotalVentes = b.TotalVentes.Add(v.Total)
		b.NombreVentes++
		b.QuantiteVendue += v.Quantite
	}

	cles := make([]string, 0, len(buckets))
	for k := range buckets {
		cles = append(cles, k)
	}
	// The key formats are zero-padded, so lexical order is chronological.
	sort.Strings(cles)

	out := make([]dto.StatistiquePeriode, 0, len(cles))
	for _, k := range cles {
		out = append(out, *buckets[k])
	}
	return out, nil
}

func venteToResponse(v *model.Vente) *dto.VenteResponse {
	produit := ""
	if v.Produit != nil {
		produit = v.Produit.Nom
	}
	client := "Client direct"
	var clientID *string
	if v.ClientID != nil {
		cid := v.ClientID.String()
		clientID = &cid
		if v.Client != nil {
			client = v.Client.Nom
		}
	}
	return &dto.VenteResponse{
		ID:           v.ID.String(),
		ProduitID:    v.ProduitID.String(),
		Produit:      produit,
		ClientID:     clientID,
		Client:       client,
		Quantite:     v.Quantite,
		PrixUnitaire: v.PrixUnitaire,
		Total:        v.Total,
		Benefice:     v.Benefice(),
		DateVente:    v.DateVente.Format(time.RFC3339),
	}
}
