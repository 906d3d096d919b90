package application

import (
	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/application/services"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/crypto"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/persistence"
	"github.com/inf25dw2g02/MindPool/pkg/jwt"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

// Services holds all application services.
type Services struct {
	Auth     *services.AuthService
	Token    *services.TokenService
	Identity *services.IdentityService
	Idea     *services.IdeaService
	Catalog  *services.CatalogService
}

// Dependencies holds shared dependencies for services.
type Dependencies struct {
	TokenGen   *crypto.TokenGenerator
	JWTManager *jwt.Manager
}

// NewDependencies creates shared dependencies from config.
func NewDependencies(cfg *config.Config) *Dependencies {
	return &Dependencies{
		TokenGen:   crypto.NewTokenGenerator(cfg.Session.Secret),
		JWTManager: jwt.NewManager(cfg.JWT.Issuer, cfg.JWT.Secret, cfg.JWT.TokenTTL),
	}
}

// NewServices creates all application services.
func NewServices(
	repos *persistence.Repositories,
	sessionStore session.Store,
	provider services.Provider,
	deps *Dependencies,
	cfg *config.Config,
	log logger.Logger,
) *Services {
	identityService := services.NewIdentityService(repos.Identity, repos.Idea, log)

	authService := services.NewAuthService(
		provider,
		identityService,
		sessionStore,
		deps.TokenGen,
		cfg,
		log,
	)

	return &Services{
		Auth:     authService,
		Token:    services.NewTokenService(deps.JWTManager),
		Identity: identityService,
		Idea:     services.NewIdeaService(repos.Idea, repos.Category, repos.Status, log),
		Catalog:  services.NewCatalogService(repos.Category, repos.Status, repos.Idea),
	}
}
