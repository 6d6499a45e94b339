package app

import (
	"fmt"
	"time"

	"github.com/treykane/logicalroot/internal/assistant"
	"github.com/treykane/logicalroot/internal/config"
)

// NewProvider builds the assistant provider named in cfg. A nil provider
// with a nil error means the assistant is switched off.
func NewProvider(cfg config.Config) (assistant.Provider, error) {
	switch cfg.Assistant.Provider {
	case config.ProviderOff:
		return nil, nil
	case "", config.ProviderHeuristic:
		return assistant.Heuristic{}, nil
	case config.ProviderOpenAI:
		p, err := assistant.NewOpenAI(cfg.APIKey(), cfg.Assistant.BaseURL, cfg.Assistant.Model)
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Assistant.Provider)
	}
}

// boundaryOptions maps config limits onto the assistant boundary.
func boundaryOptions(cfg config.Config) assistant.Options {
	timeout := time.Duration(cfg.Assistant.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = AssistantTimeout
	}
	return assistant.Options{
		Timeout:           timeout,
		RequestsPerMinute: cfg.Assistant.RequestsPerMinute,
	}
}
