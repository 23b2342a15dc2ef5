package service_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"gescom/internal/config"
	"gescom/internal/model"
	"gescom/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportFixture struct {
	ventes     *stubVenteRepo
	mouvements *stubMouvementRepo
	svc        service.ExportService
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	f := &exportFixture{
		ventes:     newStubVenteRepo(),
		mouvements: newStubMouvementRepo(),
	}
	cfg := &config.Config{ExportDir: t.TempDir()}
	f.svc = service.NewExportService(f.ventes, f.mouvements, nil, cfg)
	return f
}

func TestExporterJour(t *testing.T) {
	f := newExportFixture(t)

	p := &model.Produit{
		ID:           uuid.New(),
		Nom:          "Savon",
		PrixAchat:    decimal.NewFromInt(1000),
		PrixUnitaire: decimal.NewFromInt(1500),
	}
	client := &model.Client{ID: uuid.New(), Nom: "Rakoto"}
	jour := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	cid := client.ID
	f.ventes.ventes = append(f.ventes.ventes,
		&model.Vente{
			ID: uuid.New(), ProduitID: p.ID, ClientID: &cid, Quantite: 3,
			PrixUnitaire: decimal.NewFromInt(1500), Total: decimal.NewFromInt(4500),
			DateVente: jour.Add(10 * time.Hour), Produit: p, Client: client,
		},
		&model.Vente{
			ID: uuid.New(), ProduitID: p.ID, Quantite: 1,
			PrixUnitaire: decimal.NewFromInt(1500), Total: decimal.NewFromInt(1500),
			DateVente: jour.Add(14 * time.Hour), Produit: p,
		},
		// Vente de la veille, hors fenêtre
		&model.Vente{
			ID: uuid.New(), ProduitID: p.ID, Quantite: 5,
			PrixUnitaire: decimal.NewFromInt(1500), Total: decimal.NewFromInt(7500),
			DateVente: jour.Add(-2 * time.Hour), Produit: p,
		},
	)
	f.mouvements.mouvements = append(f.mouvements.mouvements, &model.MouvementStock{
		ID: uuid.New(), ProduitID: p.ID, TypeMouvement: model.TypeSortie,
		Quantite: 3, Motif: "Vente", StockAvant: 10, StockApres: 7,
		DateMouvement: jour.Add(10 * time.Hour), Produit: p,
	})

	files, err := f.svc.ExporterJour(context.Background(), jour)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", files.Date)

	ventesCSV, err := os.ReadFile(files.VentesCSV)
	require.NoError(t, err)
	contenu := string(ventesCSV)
	assert.Contains(t, contenu, "Date de Vente,Client,Produit,Quantité,Prix Unitaire (Ar),Total (Ar),Bénéfice (Ar)")
	assert.Contains(t, contenu, "Rakoto")
	assert.Contains(t, contenu, "Client direct")
	assert.Contains(t, contenu, "TOTAL")
	assert.Contains(t, contenu, "2 ventes")
	assert.Contains(t, contenu, "6000.00") // total du jour, la vente de la veille exclue
	assert.NotContains(t, contenu, "7500.00")

	stockCSV, err := os.ReadFile(files.StockCSV)
	require.NoError(t, err)
	lignes := strings.Split(strings.TrimSpace(string(stockCSV)), "\n")
	require.Len(t, lignes, 2) // en-tête + un mouvement
	assert.Contains(t, lignes[1], "sortie")

	pdf, err := os.ReadFile(files.VentesPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"), "le rapport doit être un PDF valide")
}

func TestExporterJour_SansVente(t *testing.T) {
	f := newExportFixture(t)

	files, err := f.svc.ExporterJour(context.Background(), time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)

	contenu, err := os.ReadFile(files.VentesCSV)
	require.NoError(t, err)
	assert.Contains(t, string(contenu), "0 ventes")
}

func TestExporterJour_ProduitSupprime(t *testing.T) {
	f := newExportFixture(t)

	jour := time.Date(2026, 3, 17, 0, 0, 0, 0, time.Local)
	f.ventes.ventes = append(f.ventes.ventes, &model.Vente{
		ID: uuid.New(), ProduitID: uuid.New(), Quantite: 1,
		PrixUnitaire: decimal.NewFromInt(1500), Total: decimal.NewFromInt(1500),
		DateVente: jour.Add(9 * time.Hour), // Produit non préchargé
	})

	files, err := f.svc.ExporterJour(context.Background(), jour)
	require.NoError(t, err)

	contenu, err := os.ReadFile(files.VentesCSV)
	require.NoError(t, err)
	assert.Contains(t, string(contenu), "Produit supprimé")
}

func TestListerExports(t *testing.T) {
	f := newExportFixture(t)

	for _, jour := range []time.Time{
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local),
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local),
	} {
		_, err := f.svc.ExporterJour(context.Background(), jour)
		require.NoError(t, err)
	}

	out, err := f.svc.ListerExports(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	// Le plus récent d'abord
	assert.Equal(t, "2026-03-15", out[0].Date)
	assert.Equal(t, "2026-03-14", out[1].Date)
}

func TestListerExports_DossierAbsent(t *testing.T) {
	cfg := &config.Config{ExportDir: "/chemin/inexistant"}
	svc := service.NewExportService(newStubVenteRepo(), newStubMouvementRepo(), nil, cfg)

	out, err := svc.ListerExports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
