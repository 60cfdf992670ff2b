package service

import (
	"github.com/MKhiriev/go-tool-access/internal/adapter"
	"github.com/MKhiriev/go-tool-access/internal/config"
	"github.com/MKhiriev/go-tool-access/internal/logger"
	"github.com/MKhiriev/go-tool-access/internal/security"
	"github.com/MKhiriev/go-tool-access/internal/store"
	"github.com/MKhiriev/go-tool-access/models"
)

type Services struct {
	AuthService        AuthService
	SessionService     SessionService
	EntitlementService EntitlementService
	BillingService     BillingService
	AppInfoService     AppInfoService
}

// NewServices wires every service over storages. In development a missing
// secret is replaced by a random one and a missing mailer by the log mailer.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	secret := cfg.App.SecretKey
	if secret == "" && cfg.App.IsDevelopment() {
		generated, err := security.DevelopmentSecret()
		if err != nil {
			return nil, err
		}
		logger.Warn().Str("func", "NewServices").Msg("no secret configured, using a random one; tokens will not survive a restart")
		secret = generated
	}

	hasher, err := security.NewHasher(secret)
	if err != nil {
		return nil, err
	}
	cipher, err := security.NewFieldCipher(secret)
	if err != nil {
		return nil, err
	}

	mailer, err := newMailer(cfg, logger)
	if err != nil {
		return nil, err
	}

	entitlements, err := NewEntitlementService(storages.SubscriptionRepository, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	magicLinks := NewMagicLinkService(storages.AuthTokenRepository, hasher, cfg.App, logger)
	sessions := NewSessionService(storages.SessionRepository, hasher, cfg.App, logger)
	auth := NewAuthService(storages.UserRepository, magicLinks, sessions, mailer, cfg.App, logger)
	billing := NewBillingService(storages.UserRepository, storages.SubscriptionRepository, cipher, cfg.App, logger)

	return &Services{
		AuthService:        NewAuthValidationService().Wrap(auth),
		SessionService:     sessions,
		EntitlementService: entitlements,
		BillingService:     NewBillingValidationService().Wrap(billing),
		AppInfoService:     appInfo,
	}, nil
}

func newMailer(cfg config.StructuredConfig, logger *logger.Logger) (adapter.Mailer, error) {
	if cfg.Adapter.MailerURL == "" {
		return adapter.NewLogMailer(cfg.App.IsDevelopment(), logger), nil
	}

	return adapter.NewHTTPMailer(cfg.Adapter, logger)
}
