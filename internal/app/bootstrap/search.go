package bootstrap

import (
	"fmt"

	appconfig "github.com/wolfman30/client-search/internal/config"
	"github.com/wolfman30/client-search/internal/leadsearch"
	"github.com/wolfman30/client-search/internal/observability/metrics"
	"github.com/wolfman30/client-search/pkg/logging"
)

// BuildSearchHandler wires vocabulary, generator, service and handler from
// config. searchMetrics may be nil when nothing scrapes the process.
func BuildSearchHandler(cfg *appconfig.Config, logger *logging.Logger, searchMetrics *metrics.SearchMetrics) (*leadsearch.Handler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	vocab, err := leadsearch.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	generator, err := leadsearch.NewGenerator(vocab, leadsearch.GeneratorSettings{
		PoolMin:  cfg.PoolSizeMin,
		PoolMax:  cfg.PoolSizeMax,
		NeedsMin: cfg.NeedsMin,
		NeedsMax: cfg.NeedsMax,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: build generator: %w", err)
	}

	var serviceOpts []leadsearch.ServiceOption
	handlerOpts := []leadsearch.HandlerOption{leadsearch.WithDefaultMinScore(cfg.DefaultMinScore)}
	if searchMetrics != nil {
		serviceOpts = append(serviceOpts, leadsearch.WithPipelineMetrics(searchMetrics))
		handlerOpts = append(handlerOpts, leadsearch.WithRequestMetrics(searchMetrics))
	}

	source := "embedded"
	if cfg.VocabularyFile != "" {
		source = cfg.VocabularyFile
	}
	logger.Info("client search pipeline ready",
		"vocabulary", source,
		"industries", len(vocab.Industries),
		"needs", len(vocab.Needs),
		"pool_min", cfg.PoolSizeMin,
		"pool_max", cfg.PoolSizeMax,
		"default_min_score", cfg.DefaultMinScore,
	)

	service := leadsearch.NewService(generator, serviceOpts...)
	return leadsearch.NewHandler(service, logger, handlerOpts...), nil
}
