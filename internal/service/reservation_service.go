package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReservationService manages soft holds. A pending reservation never touches
// stock; confirmation converts it into a sale atomically.
type ReservationService interface {
	Creer(ctx context.Context, req dto.CreerReservationRequest) (*dto.ReservationResponse, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ReservationResponse, error)
	Lister(ctx context.Context, statut string) ([]dto.ReservationResponse, error)
	ModifierStatut(ctx context.Context, id uuid.UUID, req dto.ModifierStatutRequest) (*dto.ReservationResponse, error)
	// Confirmer returns (false, nil) when stock no longer covers the hold:
	// the reservation stays "En attente" and nothing is written.
	Confirmer(ctx context.Context, id uuid.UUID) (bool, error)
	Expirees(ctx context.Context) ([]dto.ReservationResponse, error)
	Statistiques(ctx context.Context) (*dto.StatistiquesReservationsResponse, error)
}

type reservationService struct {
	reservations repository.ReservationRepository
	produits     repository.ProduitRepository
	clients      repository.ClientRepository
	ventes       VenteService
	rdb          *redis.Client
}

func NewReservationService(
	reservations repository.ReservationRepository,
	produits repository.ProduitRepository,
	clients repository.ClientRepository,
	ventes VenteService,
	rdb *redis.Client,
) ReservationService {
	return &reservationService{
		reservations: reservations,
		produits:     produits,
		clients:      clients,
		ventes:       ventes,
		rdb:          rdb,
	}
}

func (s *reservationService) Creer(ctx context.Context, req dto.CreerReservationRequest) (*dto.ReservationResponse, error) {
	produitID, err := uuid.Parse(req.ProduitID)
	if err != nil {
		return nil, fmt.Errorf("produit_id invalide: %w", err)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client_id invalide: %w", err)
	}

	produit, err := s.produits.FindByID(ctx, produitID)
	if err != nil {
		return nil, ErrIntrouvable
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, ErrIntrouvable
	}

	res := &model.Reservation{
		ProduitID:  produitID,
		ClientID:   clientID,
		Quantite:   req.Quantite,
		Statut:     model.ReservationEnAttente,
		DateLimite: req.DateLimite,
		Notes:      req.Notes,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	res.Produit = produit
	res.Client = client
	return reservationToResponse(res), nil
}

func (s *reservationService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ReservationResponse, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	return reservationToResponse(res), nil
}

func (s *reservationService) Lister(ctx context.Context, statut string) ([]dto.ReservationResponse, error) {
	reservations, err := s.reservations.List(ctx, statut)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, *reservationToResponse(&reservations[i]))
	}
	return out, nil
}

// ModifierStatut handles the non-sale transitions. "Confirmé" is refused here:
// confirmation must run through Confirmer so the sale and the status change
// commit together.
func (s *reservationService) ModifierStatut(ctx context.Context, id uuid.UUID, req dto.ModifierStatutRequest) (*dto.ReservationResponse, error) {
	switch req.Statut {
	case model.ReservationEnAttente, model.ReservationAnnulee:
	case model.ReservationConfirmee:
		return nil, fmt.Errorf("%w: la confirmation passe par /confirmer", ErrEtatInvalide)
	default:
		return nil, fmt.Errorf("%w: statut inconnu %q", ErrEtatInvalide, req.Statut)
	}

	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	if res.EstTerminale() {
		return nil, fmt.Errorf("%w: réservation déjà %s", ErrEtatInvalide, res.Statut)
	}

	res.Statut = req.Statut
	if req.Notes != "" {
		res.Notes = req.Notes
	}
	if err := s.reservations.Update(ctx, res); err != nil {
		return nil, err
	}
	return reservationToResponse(res), nil
}

func (s *reservationService) Confirmer(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return false, ErrIntrouvable
	}
	if res.EstTerminale() {
		return false, fmt.Errorf("%w: réservation déjà %s", ErrEtatInvalide, res.Statut)
	}

	clientID := res.ClientID
	txErr := runTx(ctx, s.reservations.DB(), func(tx *gorm.DB) error {
		if _, err := s.ventes.CreerVenteTx(tx, res.ProduitID, &clientID, res.Quantite, "Vente - Confirmation réservation"); err != nil {
			return err
		}
		return s.reservations.UpdateStatutTx(tx, id, model.ReservationConfirmee)
	})
	if txErr != nil {
		if errors.Is(txErr, ErrStockInsuffisant) {
			// Business outcome, not an error: the hold stays pending.
			return false, nil
		}
		return false, txErr
	}

	invaliderStatsCache(ctx, s.rdb)
	return true, nil
}

func (s *reservationService) Expirees(ctx context.Context) ([]dto.ReservationResponse, error) {
	reservations, err := s.reservations.ListExpirees(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, *reservationToResponse(&reservations[i]))
	}
	return out, nil
}

func (s *reservationService) Statistiques(ctx context.Context) (*dto.StatistiquesReservationsResponse, error) {
	total, err := s.reservations.Count(ctx)
	if err != nil {
		return nil, err
	}
	enAttente, err := s.reservations.CountByStatut(ctx, model.ReservationEnAttente)
	if err != nil {
		return nil, err
	}
	confirmees, err := s.reservations.CountByStatut(ctx, model.ReservationConfirmee)
	if err != nil {
		return nil, err
	}
	annulees, err := s.reservations.CountByStatut(ctx, model.ReservationAnnulee)
	if err != nil {
		return nil, err
	}
	return &dto.StatistiquesReservationsResponse{
		TotalReservations: total,
		EnAttente:         enAttente,
		Confirmees:        confirmees,
		Annulees:          annulees,
	}, nil
}

func reservationToResponse(r *model.Reservation) *dto.ReservationResponse {
	produit := ""
	if r.Produit != nil {
		produit = r.Produit.Nom
	}
	client := ""
	if r.Client != nil {
		client = r.Client.Nom
	}
	var limite *string
	if r.DateLimite != nil {
		s := r.DateLimite.Format(time.RFC3339)
		limite = &s
	}
	return &dto.ReservationResponse{
		ID:              r.ID.String(),
		ProduitID:       r.ProduitID.String(),
		Produit:         produit,
		ClientID:        r.ClientID.String(),
		Client:          client,
		Quantite:        r.Quantite,
		Statut:          r.Statut,
		DateReservation: r.DateReservation.Format(time.RFC3339),
		DateLimite:      limite,
		Notes:           r.Notes,
	}
}
