package providers

import (
	"github.com/samber/do/v2"

	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
	"github.com/feliperussi/medwrite-server/internal/service"
	"github.com/feliperussi/medwrite-server/internal/tools"
)

// ProvideAnalysisService provides the linguistic analysis service.
func ProvideAnalysisService(i do.Injector) (*service.AnalysisService, error) {
	clientHandle := do.MustInvoke[*AnalyzerClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAnalysisService(clientHandle.Client, log), nil
}

// ProvideEvaluationService provides the PLS evaluation service.
func ProvideEvaluationService(i do.Injector) (*service.EvaluationService, error) {
	clientHandle := do.MustInvoke[*AnalyzerClientHandle](i)
	engine := do.MustInvoke[*rating.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEvaluationService(clientHandle.Client, engine, log), nil
}

// ProvideSummaryService provides the summary and draft service.
func ProvideSummaryService(i do.Injector) (*service.SummaryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*rating.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSummaryService(storeHandle.Store, engine.WordCountLimit(), log), nil
}

// ProvideToolRegistry provides the registry with all analysis tools registered.
func ProvideToolRegistry(i do.Injector) (*tools.Registry, error) {
	glossaryHandle := do.MustInvoke[*GlossaryServiceHandle](i)
	analysisService := do.MustInvoke[*service.AnalysisService](i)
	evaluationService := do.MustInvoke[*service.EvaluationService](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry := tools.NewRegistry()

	for _, tool := range []tools.Tool{
		tools.NewGlossaryTool(glossaryHandle.Service),
		tools.NewLinguisticAnalysisTool(analysisService),
		tools.NewPLSEvaluationTool(evaluationService),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}

	log.Info("Tool registry initialized", "tools", len(registry.List()))

	return registry, nil
}
