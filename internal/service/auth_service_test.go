package service_test

import (
	"context"
	"testing"

	"gescom/internal/config"
	"gescom/internal/dto"
	"gescom/internal/model"
	"gescom/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubUtilisateurRepo struct {
	parUsername map[string]*model.Utilisateur
}

func newStubUtilisateurRepo() *stubUtilisateurRepo {
	return &stubUtilisateurRepo{parUsername: make(map[string]*model.Utilisateur)}
}

func (r *stubUtilisateurRepo) Create(_ context.Context, u *model.Utilisateur) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.parUsername[u.Username] = u
	return nil
}

func (r *stubUtilisateurRepo) FindByUsername(_ context.Context, username string) (*model.Utilisateur, error) {
	u, ok := r.parUsername[username]
	if !ok || !u.Actif {
		return nil, errNotFound
	}
	return u, nil
}

func (r *stubUtilisateurRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	for _, u := range r.parUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errNotFound
}

func seedUtilisateur(t *testing.T, repo *stubUtilisateurRepo, username, password string, actif bool) *model.Utilisateur {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Utilisateur{
		ID:           uuid.New(),
		Username:     username,
		Nom:          "Administrateur",
		PasswordHash: string(hash),
		Actif:        actif,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	repo := newStubUtilisateurRepo()
	cfg := &config.Config{JWTSecret: "secret-de-test", JWTExpirationHours: 8}
	svc := service.NewAuthService(repo, cfg)

	u := seedUtilisateur(t, repo, "admin", "admin123", true)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, u.ID.String(), resp.User.ID)

	// Le token doit se vérifier avec le même secret et porter l'identité
	token, err := jwt.Parse(resp.AccessToken, func(tk *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, "admin", claims["username"])
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	repo := newStubUtilisateurRepo()
	svc := service.NewAuthService(repo, &config.Config{JWTSecret: "s", JWTExpirationHours: 8})
	seedUtilisateur(t, repo, "admin", "admin123", true)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "faux"})
	assert.EqualError(t, err, "identifiants invalides")
}

func TestLogin_UtilisateurInconnu(t *testing.T) {
	svc := service.NewAuthService(newStubUtilisateurRepo(), &config.Config{JWTSecret: "s"})
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "personne", Password: "x"})
	assert.EqualError(t, err, "identifiants invalides")
}

func TestLogin_UtilisateurInactif(t *testing.T) {
	repo := newStubUtilisateurRepo()
	svc := service.NewAuthService(repo, &config.Config{JWTSecret: "s"})
	seedUtilisateur(t, repo, "admin", "admin123", false)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	assert.EqualError(t, err, "identifiants invalides")
}
