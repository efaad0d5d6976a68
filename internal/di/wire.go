//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/yildirimberke/berke-terminal-dashboard/pkg/config"
	"github.com/yildirimberke/berke-terminal-dashboard/pkg/server"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient services
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideStorage,

		// Domain services
		ProvideStore,
		ProvideResolver,
		ProvideRegistry,
		ProvideDispatcher,
		ProvideFeeds,
		ProvideArchiver,
		ProvideTickets,

		// Polling and delivery
		ProvideHub,
		ProvideScheduler,
		ProvideAPIHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
