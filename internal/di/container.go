// Package di provides dependency injection configuration for the Medwrite server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/feliperussi/medwrite-server/internal/config"
	"github.com/feliperussi/medwrite-server/internal/di/providers"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
	"github.com/feliperussi/medwrite-server/internal/service"
	"github.com/feliperussi/medwrite-server/internal/tools"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Glossary and search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideGlossaryService)
	do.Provide(injector, providers.ProvideGlossaryWatcher)

	// Analysis layer
	do.Provide(injector, providers.ProvideAnalyzerClient)
	do.Provide(injector, providers.ProvideRatingEngine)

	// Business services
	do.Provide(injector, providers.ProvideAnalysisService)
	do.Provide(injector, providers.ProvideEvaluationService)
	do.Provide(injector, providers.ProvideSummaryService)

	// Tool registry
	do.Provide(injector, providers.ProvideToolRegistry)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.GlossaryServiceHandle](injector)
	_ = do.MustInvoke[*providers.AnalyzerClientHandle](injector)
	_ = do.MustInvoke[*rating.Engine](injector)

	// Business services
	_ = do.MustInvoke[*service.AnalysisService](injector)
	_ = do.MustInvoke[*service.EvaluationService](injector)
	_ = do.MustInvoke[*service.SummaryService](injector)
	_ = do.MustInvoke[*tools.Registry](injector)

	// Workers
	_ = do.MustInvoke[*providers.GlossaryWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
