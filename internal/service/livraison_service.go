package service

import (
	"context"
	"fmt"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
)

type LivraisonService interface {
	Creer(ctx context.Context, req dto.CreerLivraisonRequest) (*dto.LivraisonResponse, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.LivraisonResponse, error)
	Lister(ctx context.Context, statut string) ([]dto.LivraisonResponse, error)
	ModifierStatut(ctx context.Context, id uuid.UUID, req dto.ModifierStatutRequest) (*dto.LivraisonResponse, error)
	Statistiques(ctx context.Context) (*dto.StatistiquesLivraisonsResponse, error)
}

type livraisonService struct {
	livraisons repository.LivraisonRepository
	clients    repository.ClientRepository
}

func NewLivraisonService(
	livraisons repository.LivraisonRepository,
	clients repository.ClientRepository,
) LivraisonService {
	return &livraisonService{livraisons: livraisons, clients: clients}
}

func (s *livraisonService) Creer(ctx context.Context, req dto.CreerLivraisonRequest) (*dto.LivraisonResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client_id invalide: %w", err)
	}
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, ErrIntrouvable
	}

	l := &model.Livraison{
		ClientID:   clientID,
		Adresse:    req.Adresse,
		Statut:     model.LivraisonEnCours,
		DatePrevue: req.DatePrevue,
		Notes:      req.Notes,
	}
	if err := s.livraisons.Create(ctx, l); err != nil {
		return nil, err
	}
	l.Client = client
	return livraisonToResponse(l), nil
}

func (s *livraisonService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.LivraisonResponse, error) {
	l, err := s.livraisons.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	return livraisonToResponse(l), nil
}

func (s *livraisonService) Lister(ctx context.Context, statut string) ([]dto.LivraisonResponse, error) {
	livraisons, err := s.livraisons.List(ctx, statut)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LivraisonResponse, 0, len(livraisons))
	for i := range livraisons {
		out = append(out, *livraisonToResponse(&livraisons[i]))
	}
	return out, nil
}

// ModifierStatut applies a status transition. "Livré" and "Annulé" are
// terminal; the delivery date is stamped once, on the transition to "Livré".
func (s *livraisonService) ModifierStatut(ctx context.Context, id uuid.UUID, req dto.ModifierStatutRequest) (*dto.LivraisonResponse, error) {
	switch req.Statut {
	case model.LivraisonEnCours, model.LivraisonLivree, model.LivraisonAnnulee:
	default:
		return nil, fmt.Errorf("%w: statut inconnu %q", ErrEtatInvalide, req.Statut)
	}

	l, err := s.livraisons.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	if l.EstTerminale() {
		return nil, fmt.Errorf("%w: livraison déjà %s", ErrEtatInvalide, l.Statut)
	}

	l.Statut = req.Statut
	if req.Statut == model.LivraisonLivree && l.DateLivraison == nil {
		now := time.Now()
		l.DateLivraison = &now
	}
	if req.Notes != "" {
		l.Notes = req.Notes
	}
	if err := s.livraisons.Update(ctx, l); err != nil {
		return nil, err
	}
	return livraisonToResponse(l), nil
}

func (s *livraisonService) Statistiques(ctx context.Context) (*dto.StatistiquesLivraisonsResponse, error) {
	total, err := s.livraisons.Count(ctx)
	if err != nil {
		return nil, err
	}
	enCours, err := s.livraisons.CountByStatut(ctx, model.LivraisonEnCours)
	if err != nil {
		return nil, err
	}
	livrees, err := s.livraisons.CountByStatut(ctx, model.LivraisonLivree)
	if err != nil {
		return nil, err
	}
	annulees, err := s.livraisons.CountByStatut(ctx, model.LivraisonAnnulee)
	if err != nil {
		return nil, err
	}
	return &dto.StatistiquesLivraisonsResponse{
		TotalLivraisons: total,
		EnCours:         enCours,
		Livrees:         livrees,
		Annulees:        annulees,
	}, nil
}

func livraisonToResponse(l *model.Livraison) *dto.LivraisonResponse {
	client := ""
	if l.Client != nil {
		client = l.Client.Nom
	}
	fmtDate := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}
	return &dto.LivraisonResponse{
		ID:            l.ID.String(),
		ClientID:      l.ClientID.String(),
		Client:        client,
		Adresse:       l.Adresse,
		Statut:        l.Statut,
		DatePrevue:    fmtDate(l.DatePrevue),
		DateLivraison: fmtDate(l.DateLivraison),
		Notes:         l.Notes,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}
