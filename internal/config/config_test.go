package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}

func TestValidate_ThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Search.SimilarityThreshold = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold > 1")
	}
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Search.Weights = WeightsConfig{Name: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestValidate_APIKeyRequiresModel(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.APIKey = "key"
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when api_key is set without model")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	w := cfg.Search.Weights
	if w.Name != 50 || w.AISummary != 30 || w.Text != 20 || w.Tag != 25 {
		t.Errorf("unexpected default weights: %+v", w)
	}
	if cfg.Search.SimilarityThreshold != 0.70 {
		t.Errorf("unexpected default threshold: %g", cfg.Search.SimilarityThreshold)
	}
	if cfg.Search.SemanticTimeoutSec != 5 {
		t.Errorf("unexpected default timeout: %d", cfg.Search.SemanticTimeoutSec)
	}
	if cfg.Search.DefaultScope != "personal" {
		t.Errorf("unexpected default scope: %q", cfg.Search.DefaultScope)
	}
	if cfg.Telemetry.Stream == "" || cfg.Telemetry.MaxLen <= 0 {
		t.Errorf("telemetry defaults missing: %+v", cfg.Telemetry)
	}
	if cfg.Embedding.CacheTTLSec != 86400 {
		t.Errorf("unexpected default cache ttl: %d", cfg.Embedding.CacheTTLSec)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Search: SearchConfig{
			Weights:             WeightsConfig{Name: 10, AISummary: 10, Text: 10, Tag: 10},
			SimilarityThreshold: 0.9,
		},
	}
	cfg.ApplyDefaults()

	if cfg.Search.Weights.Name != 10 {
		t.Errorf("explicit weights overwritten: %+v", cfg.Search.Weights)
	}
	if cfg.Search.SimilarityThreshold != 0.9 {
		t.Errorf("explicit threshold overwritten: %g", cfg.Search.SimilarityThreshold)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("VAULT_TEST_VAR", "from-env")

	tests := []struct {
		in   string
		want string
	}{
		{"addr: ${VAULT_TEST_VAR}", "addr: from-env"},
		{"addr: ${VAULT_TEST_MISSING:-fallback}", "addr: fallback"},
		{"addr: ${VAULT_TEST_VAR:-fallback}", "addr: from-env"},
		{"addr: plain", "addr: plain"},
	}

	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandEnvVars_MissingWithoutDefault(t *testing.T) {
	in := "addr: ${VAULT_TEST_DEFINITELY_MISSING}"
	if got := string(expandEnvVars([]byte(in))); got != "addr: " {
		t.Errorf("expected empty substitution, got %q", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local default, got %q", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
