package providers

import (
	"github.com/samber/do/v2"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	"github.com/feliperussi/medwrite-server/internal/config"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
)

// AnalyzerClientHandle wraps the analyzer client. The client is nil when
// no analyzer URL is configured; analysis endpoints then report unavailable.
type AnalyzerClientHandle struct {
	*analyzer.Client
}

// ProvideAnalyzerClient provides the feature-extraction service client.
func ProvideAnalyzerClient(i do.Injector) (*AnalyzerClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Analyzer.BaseURL == "" {
		log.Warn("No analyzer URL configured, analysis endpoints report unavailable")
		return &AnalyzerClientHandle{}, nil
	}

	client := analyzer.NewClient(cfg.Analyzer.BaseURL, cfg.Analyzer.Timeout, log)
	log.Info("Analyzer client configured", "base_url", cfg.Analyzer.BaseURL)

	return &AnalyzerClientHandle{Client: client}, nil
}

// ProvideRatingEngine provides the percentile rating engine. With no
// thresholds file configured the engine runs with an empty table and rates
// nothing, which still allows the word-count check to work.
func ProvideRatingEngine(i do.Injector) (*rating.Engine, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Rating.ThresholdsPath == "" {
		log.Warn("No thresholds table configured, evaluation reports word count only")
		return rating.NewEngine(nil, cfg.Rating.WordCountLimit), nil
	}

	thresholds, err := rating.LoadThresholds(cfg.Rating.ThresholdsPath)
	if err != nil {
		return nil, err
	}

	log.Info("Thresholds loaded",
		"path", cfg.Rating.ThresholdsPath,
		"features", len(thresholds),
	)

	return rating.NewEngine(thresholds, cfg.Rating.WordCountLimit), nil
}
