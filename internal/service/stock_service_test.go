package service_test

import (
	"context"
	"testing"
	"time"

	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduit(t *testing.T, produits *stubProduitRepo, nom string, achat, vente int64, stock, seuil int) *model.Produit {
	t.Helper()
	p := &model.Produit{
		ID:           uuid.New(),
		Nom:          nom,
		PrixAchat:    decimal.NewFromInt(achat),
		PrixUnitaire: decimal.NewFromInt(vente),
		Stock:        stock,
		SeuilAlerte:  seuil,
	}
	require.NoError(t, produits.Create(context.Background(), p))
	return p
}

func TestAjouterMouvement_Entree(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 10, 5)

	resp, err := svc.AjouterMouvement(context.Background(), dto.MouvementRequest{
		ProduitID:     p.ID.String(),
		TypeMouvement: model.TypeEntree,
		Quantite:      15,
		Motif:         "Livraison fournisseur",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.StockAvant)
	assert.Equal(t, 25, resp.StockApres)
	assert.Equal(t, model.TypeEntree, resp.TypeMouvement)
	assert.Equal(t, "Savon", resp.Produit)
	assert.Equal(t, 25, p.Stock)
	require.Len(t, mouvements.mouvements, 1)
}

func TestAjouterMouvement_SortieInsuffisante(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 7, 5)

	_, err := svc.AjouterMouvement(context.Background(), dto.MouvementRequest{
		ProduitID:     p.ID.String(),
		TypeMouvement: model.TypeSortie,
		Quantite:      8,
	})
	require.ErrorIs(t, err, service.ErrStockInsuffisant)

	// Rejected movement leaves no trace: stock unchanged, no ledger row.
	assert.Equal(t, 7, p.Stock)
	assert.Empty(t, mouvements.mouvements)
}

func TestAjouterMouvement_ProduitInconnu(t *testing.T) {
	svc := service.NewStockService(newStubProduitRepo(), newStubMouvementRepo(), nil)

	_, err := svc.AjouterMouvement(context.Background(), dto.MouvementRequest{
		ProduitID:     uuid.NewString(),
		TypeMouvement: model.TypeEntree,
		Quantite:      5,
	})
	assert.ErrorIs(t, err, service.ErrIntrouvable)
}

func TestAjouterMouvement_SortieExacte(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 5, 5)

	resp, err := svc.AjouterMouvement(context.Background(), dto.MouvementRequest{
		ProduitID:     p.ID.String(),
		TypeMouvement: model.TypeSortie,
		Quantite:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockApres)
	assert.Equal(t, 0, p.Stock)
}

func TestEtatStock(t *testing.T) {
	produits := newStubProduitRepo()
	svc := service.NewStockService(produits, newStubMouvementRepo(), nil)

	seedProduit(t, produits, "Savon", 1000, 1500, 10, 5)  // au-dessus du seuil
	seedProduit(t, produits, "Huile", 5000, 7000, 2, 5)   // stock bas
	seedProduit(t, produits, "Riz", 2000, 2500, 5, 5)     // au seuil = stock bas

	etat, err := svc.EtatStock(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, etat.TotalProduits)
	assert.Equal(t, 2, etat.ProduitsStockBas)
	// 10×1000 + 2×5000 + 5×2000 = 30000, valorisé au prix d'achat
	assert.True(t, etat.ValeurStockTotal.Equal(decimal.NewFromInt(30000)),
		"valeur attendue 30000, obtenu %s", etat.ValeurStockTotal)
	assert.Len(t, etat.Produits, 3)
}

func TestProduitsStockBas(t *testing.T) {
	produits := newStubProduitRepo()
	svc := service.NewStockService(produits, newStubMouvementRepo(), nil)

	seedProduit(t, produits, "Savon", 1000, 1500, 10, 5)
	bas := seedProduit(t, produits, "Huile", 5000, 7000, 3, 5)

	resp, err := svc.ProduitsStockBas(context.Background())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, bas.ID.String(), resp[0].ID)
	assert.True(t, resp[0].StockBas)
}

func TestReapprovisionner_CibleParDefaut(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 2, 5)

	resp, err := svc.Reapprovisionner(context.Background(), p.ID, nil)
	require.NoError(t, err)

	// Cible par défaut = 3 × seuil = 15
	assert.Equal(t, 15, p.Stock)
	assert.Equal(t, 13, resp.Quantite)
	assert.Equal(t, "Réapprovisionnement automatique - Cible: 15", resp.Motif)
}

func TestReapprovisionner_CibleExplicite(t *testing.T) {
	produits := newStubProduitRepo()
	svc := service.NewStockService(produits, newStubMouvementRepo(), nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 4, 5)
	cible := 20

	resp, err := svc.Reapprovisionner(context.Background(), p.ID, &cible)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Stock)
	assert.Equal(t, 16, resp.Quantite)
}

func TestReapprovisionner_DejaAuNiveau(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	// Stock 20 dépasse déjà la cible par défaut (3 × 5 = 15)
	p := seedProduit(t, produits, "Savon", 1000, 1500, 20, 5)

	resp, err := svc.Reapprovisionner(context.Background(), p.ID, nil)
	require.NoError(t, err)

	// Succès sans effet: aucun mouvement, stock inchangé
	assert.Nil(t, resp)
	assert.Equal(t, 20, p.Stock)
	assert.Empty(t, mouvements.mouvements)
}

func TestListerMouvements_DateAvecFuseauHoraire(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 10, 5)

	// Un horodatage hors UTC doit garder son décalage réel dans la réponse.
	quand := time.Date(2026, 3, 10, 14, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))
	require.NoError(t, mouvements.CreateTx(nil, &model.MouvementStock{
		ProduitID:     p.ID,
		TypeMouvement: model.TypeEntree,
		Quantite:      5,
		StockAvant:    10,
		StockApres:    15,
		DateMouvement: quand,
	}))

	resp, err := svc.ListerMouvements(context.Background(), dto.MouvementFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "2026-03-10T14:30:00+02:00", resp.Data[0].DateMouvement)

	parsed, err := time.Parse(time.RFC3339, resp.Data[0].DateMouvement)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(quand))
}

func TestListerMouvements_FiltreType(t *testing.T) {
	produits := newStubProduitRepo()
	mouvements := newStubMouvementRepo()
	svc := service.NewStockService(produits, mouvements, nil)

	p := seedProduit(t, produits, "Savon", 1000, 1500, 10, 5)

	for _, req := range []dto.MouvementRequest{
		{ProduitID: p.ID.String(), TypeMouvement: model.TypeEntree, Quantite: 5},
		{ProduitID: p.ID.String(), TypeMouvement: model.TypeSortie, Quantite: 3},
		{ProduitID: p.ID.String(), TypeMouvement: model.TypeSortie, Quantite: 2},
	} {
		_, err := svc.AjouterMouvement(context.Background(), req)
		require.NoError(t, err)
	}

	resp, err := svc.ListerMouvements(context.Background(), dto.MouvementFilter{Type: model.TypeSortie})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	for _, m := range resp.Data {
		assert.Equal(t, model.TypeSortie, m.TypeMouvement)
	}
}
