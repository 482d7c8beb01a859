package provider

import (
	"fmt"

	"suplio/internal/config"
	"suplio/internal/port"
)

// Factory is a function that creates a ModelProvider from provider settings.
type Factory func(cfg *config.ProviderSettings) (port.ModelProvider, error)

// registry of provider factories, populated explicitly via Register.
var providers = map[string]Factory{}

// Register registers a provider factory by name.
func Register(name string, factory Factory) {
	providers[name] = factory
}

// New creates a ModelProvider from provider settings using the registered factory.
func New(cfg *config.ProviderSettings) (port.ModelProvider, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
