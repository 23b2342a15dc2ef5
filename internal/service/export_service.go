package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gescom/internal/config"
	"gescom/internal/dto"
	"gescom/internal/infra"
	"gescom/internal/model"
	"gescom/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ExportService produces the daily report artifacts: two CSV files and a PDF,
// all written under EXPORT_DIR/YYYY-MM-DD/. The scheduler calls ExporterJour
// every night; the API exposes it for manual re-runs.
type ExportService interface {
	ExporterJour(ctx context.Context, date time.Time) (*dto.ExportFiles, error)
	EnvoyerRapportHebdomadaire(ctx context.Context, maintenant time.Time) error
	ListerExports(ctx context.Context) ([]dto.ExportFiles, error)
}

type exportService struct {
	ventes     repository.VenteRepository
	mouvements repository.MouvementStockRepository
	mailer     *infra.Mailer
	cfg        *config.Config
}

func NewExportService(
	ventes repository.VenteRepository,
	mouvements repository.MouvementStockRepository,
	mailer *infra.Mailer,
	cfg *config.Config,
) ExportService {
	return &exportService{ventes: ventes, mouvements: mouvements, mailer: mailer, cfg: cfg}
}

// fenetreJour returns the inclusive day window [00:00:00, 23:59:59.999...].
func fenetreJour(date time.Time) (time.Time, time.Time) {
	debut := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return debut, debut.Add(24*time.Hour - time.Nanosecond)
}

func (s *exportService) ExporterJour(ctx context.Context, date time.Time) (*dto.ExportFiles, error) {
	debut, fin := fenetreJour(date)

	ventes, err := s.ventes.ListBetween(ctx, debut, fin)
	if err != nil {
		return nil, err
	}
	mouvements, err := s.mouvements.ListBetween(ctx, debut, fin)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.cfg.ExportDir, debut.Format("2006-01-02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: création du dossier: %w", err)
	}

	suffix := debut.Format("20060102")
	files := &dto.ExportFiles{
		VentesCSV: filepath.Join(dir, fmt.Sprintf("ventes_%s.csv", suffix)),
		StockCSV:  filepath.Join(dir, fmt.Sprintf("stock_mouvements_%s.csv", suffix)),
		VentesPDF: filepath.Join(dir, fmt.Sprintf("rapport_ventes_%s.pdf", suffix)),
		Date:      debut.Format("2006-01-02"),
	}

	if err := s.ecrireVentesCSV(files.VentesCSV, ventes); err != nil {
		return nil, err
	}
	if err := s.ecrireMouvementsCSV(files.StockCSV, mouvements); err != nil {
		return nil, err
	}
	if err := s.ecrireVentesPDF(files.VentesPDF, debut, ventes); err != nil {
		return nil, err
	}

	log.Info().
		Str("date", files.Date).
		Int("ventes", len(ventes)).
		Int("mouvements", len(mouvements)).
		Msg("export journalier écrit")
	return files, nil
}

func (s *exportService) ecrireVentesCSV(path string, ventes []model.Vente) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"Date de Vente", "Client", "Produit", "Quantité",
		"Prix Unitaire (Ar)", "Total (Ar)", "Bénéfice (Ar)",
	}); err != nil {
		return err
	}

	totalVentes := decimal.Zero
	totalBenefices := decimal.Zero
	for i := range ventes {
		v := &ventes[i]
		benefice := v.Benefice()
		totalVentes = totalVentes.Add(v.Total)
		totalBenefices = totalBenefices.Add(benefice)
		if err := w.Write([]string{
			v.DateVente.Format("2006-01-02 15:04:05"),
			nomClient(v),
			nomProduit(v.Produit),
			fmt.Sprintf("%d", v.Quantite),
			v.PrixUnitaire.StringFixed(2),
			v.Total.StringFixed(2),
			benefice.StringFixed(2),
		}); err != nil {
			return err
		}
	}

	// Blank separator then the TOTAL footer row
	if err := w.Write([]string{}); err != nil {
		return err
	}
	if err := w.Write([]string{
		"TOTAL", "", "",
		fmt.Sprintf("%d ventes", len(ventes)),
		"",
		totalVentes.StringFixed(2),
		totalBenefices.StringFixed(2),
	}); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func (s *exportService) ecrireMouvementsCSV(path string, mouvements []model.MouvementStock) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"Date", "Produit", "Type de Mouvement", "Quantité",
		"Stock Avant", "Stock Après", "Motif",
	}); err != nil {
		return err
	}

	for i := range mouvements {
		m := &mouvements[i]
		if err := w.Write([]string{
			m.DateMouvement.Format("2006-01-02 15:04:05"),
			nomProduit(m.Produit),
			m.TypeMouvement,
			fmt.Sprintf("%d", m.Quantite),
			fmt.Sprintf("%d", m.StockAvant),
			fmt.Sprintf("%d", m.StockApres),
			m.Motif,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *exportService) ecrireVentesPDF(path string, date time.Time, ventes []model.Vente) error {
	rows := make([]infra.RapportVenteRow, 0, len(ventes))
	resume := infra.RapportResume{NombreVentes: len(ventes), TotalVentes: decimal.Zero, TotalBenefices: decimal.Zero}
	for i := range ventes {
		v := &ventes[i]
		benefice := v.Benefice()
		resume.TotalVentes = resume.TotalVentes.Add(v.Total)
		resume.TotalBenefices = resume.TotalBenefices.Add(benefice)
		rows = append(rows, infra.RapportVenteRow{
			Heure:        v.DateVente.Format("15:04"),
			Client:       nomClient(v),
			Produit:      nomProduit(v.Produit),
			Quantite:     v.Quantite,
			PrixUnitaire: v.PrixUnitaire,
			Total:        v.Total,
			Benefice:     benefice,
		})
	}

	pdfBytes, err := infra.GenerateRapportVentesPDF(date, rows, resume)
	if err != nil {
		return err
	}
	return os.WriteFile(path, pdfBytes, 0o644)
}

// EnvoyerRapportHebdomadaire mails the summary of the last 7 days. Silently
// skipped when no mailer or recipient is configured.
func (s *exportService) EnvoyerRapportHebdomadaire(ctx context.Context, maintenant time.Time) error {
	if s.mailer == nil || s.cfg.ReportRecipient == "" {
		return nil
	}

	fin := maintenant
	debut := maintenant.AddDate(0, 0, -7)
	ventes, err := s.ventes.ListBetween(ctx, debut, fin)
	if err != nil {
		return err
	}

	totalVentes := decimal.Zero
	totalBenefices := decimal.Zero
	quantite := 0
	for i := range ventes {
		totalVentes = totalVentes.Add(ventes[i].Total)
		totalBenefices = totalBenefices.Add(ventes[i].Benefice())
		quantite += ventes[i].Quantite
	}

	corps := fmt.Sprintf(
		"Rapport hebdomadaire du %s au %s\n\n"+
			"Nombre de ventes: %d\n"+
			"Articles vendus: %d\n"+
			"Chiffre d'affaires: %s Ar\n"+
			"Bénéfices: %s Ar\n",
		debut.Format("02/01/2006"), fin.Format("02/01/2006"),
		len(ventes), quantite,
		totalVentes.StringFixed(0), totalBenefices.StringFixed(0),
	)

	sujet := fmt.Sprintf("Rapport hebdomadaire des ventes - %s", fin.Format("02/01/2006"))
	return s.mailer.SendRapport(s.cfg.ReportRecipient, sujet, corps)
}

// ListerExports scans the export directory and returns one entry per exported
// day, most recent first.
func (s *exportService) ListerExports(ctx context.Context) ([]dto.ExportFiles, error) {
	entries, err := os.ReadDir(s.cfg.ExportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.ExportFiles{}, nil
		}
		return nil, err
	}

	out := make([]dto.ExportFiles, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		date, err := time.Parse("2006-01-02", e.Name())
		if err != nil {
			continue
		}
		suffix := date.Format("20060102")
		dir := filepath.Join(s.cfg.ExportDir, e.Name())
		out = append(out, dto.ExportFiles{
			VentesCSV: filepath.Join(dir, fmt.Sprintf("ventes_%s.csv", suffix)),
			StockCSV:  filepath.Join(dir, fmt.Sprintf("stock_mouvements_%s.csv", suffix)),
			VentesPDF: filepath.Join(dir, fmt.Sprintf("rapport_ventes_%s.pdf", suffix)),
			Date:      e.Name(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func nomClient(v *model.Vente) string {
	if v.ClientID == nil {
		return "Client direct"
	}
	if v.Client == nil {
		return "Client direct"
	}
	return v.Client.Nom
}

func nomProduit(p *model.Produit) string {
	if p == nil {
		return "Produit supprimé"
	}
	return p.Nom
}
