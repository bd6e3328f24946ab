package cmd

import (
	"github.com/lehigh-university-libraries/whiteboard/internal/config"
	"github.com/lehigh-university-libraries/whiteboard/internal/flows"
	"github.com/lehigh-university-libraries/whiteboard/internal/gemini"
	"github.com/lehigh-university-libraries/whiteboard/internal/ollama"
	"github.com/lehigh-university-libraries/whiteboard/internal/openai"
	"github.com/lehigh-university-libraries/whiteboard/internal/providers"
)

// newRunner registers every text backend and uses Gemini for images.
func newRunner(cfg *config.Config) (*flows.Runner, *providers.Registry) {
	registry := providers.NewRegistry(cfg.Provider)

	g := gemini.New(cfg.GeminiAPIKey)
	registry.Register(config.ProviderGemini, g, cfg.GeminiModel)
	registry.Register(config.ProviderOpenAI, openai.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL), cfg.OpenAIModel)
	registry.Register(config.ProviderOllama, ollama.New(cfg.OllamaURL), cfg.OllamaModel)

	return flows.NewRunner(registry, g, cfg.ImageModel, cfg.Temperature), registry
}

// backendOptions fills in the configured provider and its default model.
func backendOptions(cfg *config.Config, provider, model string) flows.Options {
	if provider == "" {
		provider = cfg.Provider
	}
	if model == "" {
		model = cfg.DefaultModel(provider)
	}
	return flows.Options{Provider: provider, Model: model}
}
