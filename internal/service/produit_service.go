package service

import (
	"context"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProduitService defines the business logic contract for the catalog.
type ProduitService interface {
	Creer(ctx context.Context, req dto.CreerProduitRequest) (*dto.ProduitResponse, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ProduitResponse, error)
	Lister(ctx context.Context, filter dto.ProduitFilter) (*dto.ProduitListResponse, error)
	Actualiser(ctx context.Context, id uuid.UUID, req dto.ModifierProduitRequest) (*dto.ProduitResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
}

type produitService struct {
	produits     repository.ProduitRepository
	mouvements   repository.MouvementStockRepository
	ventes       repository.VenteRepository
	reservations repository.ReservationRepository
	rdb          *redis.Client
}

func NewProduitService(
	produits repository.ProduitRepository,
	mouvements repository.MouvementStockRepository,
	ventes repository.VenteRepository,
	reservations repository.ReservationRepository,
	rdb *redis.Client,
) ProduitService {
	return &produitService{
		produits:     produits,
		mouvements:   mouvements,
		ventes:       ventes,
		reservations: reservations,
		rdb:          rdb,
	}
}

// Creer registers a catalog entry. A non-zero opening stock gets its own
// ledger row so the history starts complete.
func (s *produitService) Creer(ctx context.Context, req dto.CreerProduitRequest) (*dto.ProduitResponse, error) {
	p := &model.Produit{
		Nom:          req.Nom,
		PrixAchat:    req.PrixAchat,
		PrixUnitaire: req.PrixUnitaire,
		Stock:        req.Stock,
		SeuilAlerte:  req.SeuilAlerte,
	}
	if p.SeuilAlerte == 0 {
		p.SeuilAlerte = 10
	}

	txErr := runTx(ctx, s.produits.DB(), func(tx *gorm.DB) error {
		if err := s.produits.CreateTx(tx, p); err != nil {
			return err
		}
		if req.Stock > 0 {
			m := &model.MouvementStock{
				ProduitID:     p.ID,
				TypeMouvement: model.TypeEntree,
				Quantite:      req.Stock,
				Motif:         "Stock initial",
				StockAvant:    0,
				StockApres:    req.Stock,
			}
			return s.mouvements.CreateTx(tx, m)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return produitToResponse(p), nil
}

func (s *produitService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ProduitResponse, error) {
	p, err := s.produits.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	return produitToResponse(p), nil
}

func (s *produitService) Lister(ctx context.Context, filter dto.ProduitFilter) (*dto.ProduitListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	produits, total, err := s.produits.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProduitResponse, 0, len(produits))
	for i := range produits {
		items = append(items, *produitToResponse(&produits[i]))
	}
	return &dto.ProduitListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Actualiser patches name, prices and threshold. Stock is deliberately not
// editable here.
func (s *produitService) Actualiser(ctx context.Context, id uuid.UUID, req dto.ModifierProduitRequest) (*dto.ProduitResponse, error) {
	p, err := s.produits.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	if req.Nom != nil {
		p.Nom = *req.Nom
	}
	if req.PrixAchat != nil {
		p.PrixAchat = *req.PrixAchat
	}
	if req.PrixUnitaire != nil {
		p.PrixUnitaire = *req.PrixUnitaire
	}
	if req.SeuilAlerte != nil {
		p.SeuilAlerte = *req.SeuilAlerte
	}
	if err := s.produits.Update(ctx, p); err != nil {
		return nil, err
	}
	invaliderStatsCache(ctx, s.rdb)
	return produitToResponse(p), nil
}

// Supprimer removes the product and everything that references it, in one
// transaction.
func (s *produitService) Supprimer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.produits.FindByID(ctx, id); err != nil {
		return ErrIntrouvable
	}
	txErr := runTx(ctx, s.produits.DB(), func(tx *gorm.DB) error {
		if err := s.mouvements.DeleteByProduitTx(tx, id); err != nil {
			return err
		}
		if err := s.ventes.DeleteByProduitTx(tx, id); err != nil {
			return err
		}
		if err := s.reservations.DeleteByProduitTx(tx, id); err != nil {
			return err
		}
		return s.produits.DeleteTx(tx, id)
	})
	if txErr != nil {
		return txErr
	}
	invaliderStatsCache(ctx, s.rdb)
	return nil
}
