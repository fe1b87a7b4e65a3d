package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Billing.TrialDays != 14 {
		t.Errorf("Billing.TrialDays = %d, want 14", cfg.Billing.TrialDays)
	}
	if cfg.Worker.OverdueSweepSchedule != "@hourly" || !cfg.Worker.OverdueSweepEnabled {
		t.Errorf("Worker = %+v", cfg.Worker)
	}
	if cfg.Mail.Enabled() {
		t.Error("mail should be disabled without an API key")
	}
	if len(cfg.Billing.Prices) != 3 || len(cfg.Billing.Products) != 3 {
		t.Errorf("Billing prices/products = %d/%d, want 3/3", len(cfg.Billing.Prices), len(cfg.Billing.Products))
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("TRIAL_DAYS", "7")
	t.Setenv("STRIPE_PRODUCT_PRO", "prod_custom")
	t.Setenv("OVERDUE_SWEEP_ENABLED", "false")
	t.Setenv("SENDGRID_API_KEY", "SG.key")
	// unparsable values fall back to the default
	t.Setenv("RATE_LIMIT_BURST", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.AccessTokenExpiry != 30*time.Minute {
		t.Errorf("AccessTokenExpiry = %v", cfg.Auth.AccessTokenExpiry)
	}
	if cfg.Billing.TrialDays != 7 {
		t.Errorf("TrialDays = %d", cfg.Billing.TrialDays)
	}
	if cfg.Billing.Products["prod_custom"] != "pro" {
		t.Errorf("Products = %v, want prod_custom -> pro", cfg.Billing.Products)
	}
	if cfg.Worker.OverdueSweepEnabled {
		t.Error("OverdueSweepEnabled should be false")
	}
	if !cfg.Mail.Enabled() {
		t.Error("mail should be enabled with an API key")
	}
	if cfg.Server.RateLimitBurst != 40 {
		t.Errorf("RateLimitBurst = %d, want default 40", cfg.Server.RateLimitBurst)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Environment: "development"},
			Database: DatabaseConfig{Driver: "sqlite"},
			Auth:     AuthConfig{JWTSecret: "secret"},
			Billing:  BillingConfig{TrialDays: 14, Products: map[string]string{"prod_1": "basic"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "port"},
		{name: "bad driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "driver"},
		{name: "negative trial", mutate: func(c *Config) { c.Billing.TrialDays = -1 }, wantErr: "TRIAL_DAYS"},
		{name: "empty product id", mutate: func(c *Config) { c.Billing.Products[""] = "pro" }, wantErr: "product"},
		{
			name: "production stripe without webhook secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Billing.SecretKey = "sk_live_x"
			},
			wantErr: "STRIPE_WEBHOOK_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
