package service

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockService is the single write path for inventory. Every stock change,
// manual or sale-induced, appends an immutable MouvementStock row recording
// the before/after levels inside the same transaction as the stock update.
type StockService interface {
	AjouterMouvement(ctx context.Context, req dto.MouvementRequest) (*dto.MouvementResponse, error)
	// AjouterMouvementTx is called within an outer transaction — requires a live tx
	AjouterMouvementTx(tx *gorm.DB, produitID uuid.UUID, typeMouvement string, quantite int, motif string) (*model.MouvementStock, error)
	ListerMouvements(ctx context.Context, filter dto.MouvementFilter) (*dto.MouvementListResponse, error)
	ProduitsStockBas(ctx context.Context) ([]dto.ProduitResponse, error)
	EtatStock(ctx context.Context) (*dto.EtatStockResponse, error)
	Reapprovisionner(ctx context.Context, produitID uuid.UUID, quantiteCible *int) (*dto.MouvementResponse, error)
}

type stockService struct {
	produits   repository.ProduitRepository
	mouvements repository.MouvementStockRepository
	rdb        *redis.Client
}

func NewStockService(
	produits repository.ProduitRepository,
	mouvements repository.MouvementStockRepository,
	rdb *redis.Client,
) StockService {
	return &stockService{produits: produits, mouvements: mouvements, rdb: rdb}
}

func (s *stockService) AjouterMouvement(ctx context.Context, req dto.MouvementRequest) (*dto.MouvementResponse, error) {
	produitID, err := uuid.Parse(req.ProduitID)
	if err != nil {
		return nil, fmt.Errorf("produit_id invalide: %w", err)
	}

	var mouvement *model.MouvementStock
	txErr := runTx(ctx, s.produits.DB(), func(tx *gorm.DB) error {
		m, err := s.AjouterMouvementTx(tx, produitID, req.TypeMouvement, req.Quantite, req.Motif)
		if err != nil {
			return err
		}
		mouvement = m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	invaliderStatsCache(ctx, s.rdb)
	return mouvementToResponse(mouvement), nil
}

func (s *stockService) AjouterMouvementTx(tx *gorm.DB, produitID uuid.UUID, typeMouvement string, quantite int, motif string) (*model.MouvementStock, error) {
	p, err := s.produits.FindByIDTx(tx, produitID)
	if err != nil {
		return nil, ErrIntrouvable
	}
	stockAvant := p.Stock

	var stockApres int
	switch typeMouvement {
	case model.TypeEntree:
		if err := s.produits.UpdateStockTx(tx, produitID, quantite); err != nil {
			return nil, err
		}
		stockApres = stockAvant + quantite
	case model.TypeSortie:
		// Guarded decrement: the WHERE clause makes concurrent oversell
		// impossible regardless of what the pre-read said.
		ok, err := s.produits.DebiterStockTx(tx, produitID, quantite)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStockInsuffisant
		}
		stockApres = stockAvant - quantite
	default:
		return nil, fmt.Errorf("type de mouvement inconnu: %s", typeMouvement)
	}

	m := &model.MouvementStock{
		ProduitID:     produitID,
		TypeMouvement: typeMouvement,
		Quantite:      quantite,
		Motif:         motif,
		StockAvant:    stockAvant,
		StockApres:    stockApres,
	}
	if err := s.mouvements.CreateTx(tx, m); err != nil {
		return nil, err
	}
	m.Produit = p
	return m, nil
}

func (s *stockService) ListerMouvements(ctx context.Context, filter dto.MouvementFilter) (*dto.MouvementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	mouvements, total, err := s.mouvements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MouvementResponse, 0, len(mouvements))
	for i := range mouvements {
		items = append(items, *mouvementToResponse(&mouvements[i]))
	}
	return &dto.MouvementListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *stockService) ProduitsStockBas(ctx context.Context) ([]dto.ProduitResponse, error) {
	produits, err := s.produits.ListStockBas(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProduitResponse, 0, len(produits))
	for i := range produits {
		resp = append(resp, *produitToResponse(&produits[i]))
	}
	return resp, nil
}

// EtatStock returns the inventory snapshot: counts, valuation at purchase
// price, and the per-product detail.
func (s *stockService) EtatStock(ctx context.Context) (*dto.EtatStockResponse, error) {
	produits, err := s.produits.All(ctx)
	if err != nil {
		return nil, err
	}

	valeur := decimal.Zero
	stockBas := 0
	detail := make([]dto.ProduitResponse, 0, len(produits))
	for i := range produits {
		p := &produits[i]
		valeur = valeur.Add(p.PrixAchat.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.EstStockBas() {
			stockBas++
		}
		detail = append(detail, *produitToResponse(p))
	}

	return &dto.EtatStockResponse{
		TotalProduits:    len(produits),
		ProduitsStockBas: stockBas,
		ValeurStockTotal: valeur,
		Produits:         detail,
	}, nil
}

// Reapprovisionner tops the product up to the target level. Default target is
// three times the alert threshold. Stock already at or above the target is a
// successful no-op: (nil, nil), no movement written.
func (s *stockService) Reapprovisionner(ctx context.Context, produitID uuid.UUID, quantiteCible *int) (*dto.MouvementResponse, error) {
	p, err := s.produits.FindByID(ctx, produitID)
	if err != nil {
		return nil, ErrIntrouvable
	}

	cible := p.SeuilAlerte * 3
	if quantiteCible != nil {
		cible = *quantiteCible
	}
	if p.Stock >= cible {
		return nil, nil
	}

	return s.AjouterMouvement(ctx, dto.MouvementRequest{
		ProduitID:     produitID.String(),
		TypeMouvement: model.TypeEntree,
		Quantite:      cible - p.Stock,
		Motif:         fmt.Sprintf("Réapprovisionnement automatique - Cible: %d", cible),
	})
}

func mouvementToResponse(m *model.MouvementStock) *dto.MouvementResponse {
	produit := ""
	if m.Produit != nil {
		produit = m.Produit.Nom
	}
	return &dto.MouvementResponse{
		ID:            m.ID.String(),
		ProduitID:     m.ProduitID.String(),
		Produit:       produit,
		TypeMouvement: m.TypeMouvement,
		Quantite:      m.Quantite,
		Motif:         m.Motif,
		StockAvant:    m.StockAvant,
		StockApres:    m.StockApres,
		DateMouvement: m.DateMouvement.Format(time.RFC3339),
	}
}

func produitToResponse(p *model.Produit) *dto.ProduitResponse {
	return &dto.ProduitResponse{
		ID:            p.ID.String(),
		Nom:           p.Nom,
		PrixAchat:     p.PrixAchat,
		PrixUnitaire:  p.PrixUnitaire,
		MargeBenefice: p.MargeBenefice(),
		Stock:         p.Stock,
		SeuilAlerte:   p.SeuilAlerte,
		StockBas:      p.EstStockBas(),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
