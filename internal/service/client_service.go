package service

import (
	"context"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientService interface {
	Creer(ctx context.Context, req dto.CreerClientRequest) (*dto.ClientResponse, error)
	ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	Lister(ctx context.Context, nom string, page, limit int) (*dto.ClientListResponse, error)
	Actualiser(ctx context.Context, id uuid.UUID, req dto.ModifierClientRequest) (*dto.ClientResponse, error)
	Supprimer(ctx context.Context, id uuid.UUID) error
	Ventes(ctx context.Context, id uuid.UUID) ([]dto.VenteResponse, error)
}

type clientService struct {
	clients repository.ClientRepository
	ventes  repository.VenteRepository
}

func NewClientService(clients repository.ClientRepository, ventes repository.VenteRepository) ClientService {
	return &clientService{clients: clients, ventes: ventes}
}

func (s *clientService) Creer(ctx context.Context, req dto.CreerClientRequest) (*dto.ClientResponse, error) {
	c := &model.Client{
		Nom:     req.Nom,
		Contact: req.Contact,
		Adresse: req.Adresse,
		Email:   req.Email,
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := clientToResponse(c)
	return resp, nil
}

func (s *clientService) ObtenirParID(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	resp := clientToResponse(c)
	total, err := s.ventes.SumTotalByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	resp.TotalAchats = total
	return resp, nil
}

func (s *clientService) Lister(ctx context.Context, nom string, page, limit int) (*dto.ClientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	clients, total, err := s.clients.List(ctx, nom, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, *clientToResponse(&clients[i]))
	}
	return &dto.ClientListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *clientService) Actualiser(ctx context.Context, id uuid.UUID, req dto.ModifierClientRequest) (*dto.ClientResponse, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, ErrIntrouvable
	}
	if req.Nom != nil {
		c.Nom = *req.Nom
	}
	if req.Contact != nil {
		c.Contact = req.Contact
	}
	if req.Adresse != nil {
		c.Adresse = req.Adresse
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return clientToResponse(c), nil
}

// Supprimer removes the client but keeps its sales as ventes directes.
func (s *clientService) Supprimer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return ErrIntrouvable
	}
	return runTx(ctx, s.ventes.DB(), func(tx *gorm.DB) error {
		if err := s.ventes.DetachClientTx(tx, id); err != nil {
			return err
		}
		return s.clients.DeleteTx(tx, id)
	})
}

func (s *clientService) Ventes(ctx context.Context, id uuid.UUID) ([]dto.VenteResponse, error) {
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return nil, ErrIntrouvable
	}
	ventes, err := s.ventes.ListByClient(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VenteResponse, 0, len(ventes))
	for i := range ventes {
		out = append(out, *venteToResponse(&ventes[i]))
	}
	return out, nil
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID.String(),
		Nom:       c.Nom,
		Contact:   c.Contact,
		Adresse:   c.Adresse,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
