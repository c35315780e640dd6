package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/a1zero/internal/ai"
	"github.com/edgard/a1zero/internal/config"
)

func testModels() config.ModelsConfig {
	return config.ModelsConfig{
		Default: "sonar-reasoning-pro",
		Endpoints: map[string]config.EndpointConfig{
			"sonar-reasoning-pro": {Provider: "http", URL: "https://sonar.example/api?text="},
			"deepseek":            {Provider: "http", URL: "https://deepseek.example/chat?q=", Label: "Deepseek"},
			"hermes":              {URL: "https://hermes.example/?content="},
			"gemini":              {Provider: "gemini", Model: "gemini-2.0-flash"},
		},
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r, err := ai.NewRegistry(testModels())
	require.NoError(t, err)

	assert.Equal(t, []string{"sonar-reasoning-pro", "deepseek", "gemini", "hermes"}, r.Names())
	assert.Equal(t, "sonar-reasoning-pro", r.Default().Name)

	hermes, ok := r.Lookup("hermes")
	require.True(t, ok)
	assert.Equal(t, config.ProviderHTTP, hermes.Provider, "provider defaults to http")
	assert.Equal(t, "hermes", hermes.Label, "label defaults to name")

	deepseek, ok := r.Lookup("deepseek")
	require.True(t, ok)
	assert.Equal(t, "Deepseek", deepseek.Label)
}

func TestNewRegistryRejectsBadConfig(t *testing.T) {
	t.Parallel()

	_, err := ai.NewRegistry(config.ModelsConfig{Default: "x"})
	require.Error(t, err)

	cfg := testModels()
	cfg.Default = "missing"
	_, err = ai.NewRegistry(cfg)
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r, err := ai.NewRegistry(testModels())
	require.NoError(t, err)

	tests := []struct {
		name         string
		model        string
		wantName     string
		wantFallback bool
	}{
		{name: "registered", model: "deepseek", wantName: "deepseek"},
		{name: "default", model: "sonar-reasoning-pro", wantName: "sonar-reasoning-pro"},
		{name: "case insensitive", model: "DeepSeek", wantName: "deepseek"},
		{name: "surrounding space", model: " hermes ", wantName: "hermes"},
		{name: "unknown falls back", model: "gpt-17", wantName: "sonar-reasoning-pro", wantFallback: true},
		{name: "empty falls back", model: "", wantName: "sonar-reasoning-pro", wantFallback: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ep, fallback := r.Resolve(tt.model)
			assert.Equal(t, tt.wantName, ep.Name)
			assert.Equal(t, tt.wantFallback, fallback)
			assert.NotEmpty(t, ep.Provider)
		})
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	t.Parallel()

	r, err := ai.NewRegistry(testModels())
	require.NoError(t, err)

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, "sonar-reasoning-pro", r.Names()[0])
}
