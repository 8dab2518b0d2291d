package services

import (
	portsrepo "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/repositories"
	portssvc "github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/core/ports/services"
	"github.com/GiuseppeDM98/net-worth-tracker-sub001/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, quoteProvider portssvc.QuoteProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Ledger = NewLedgerService(repos.EntryRepo)
	container.Asset = NewAssetService(repos.AssetRepo, repos.SnapshotRepo)
	container.Reporting = NewReportingService(repos.EntryRepo, repos.SnapshotRepo)
	container.Quote = NewQuoteService(quoteProvider, repos.AssetRepo, cfg.QuoteRefreshConcurrency)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
