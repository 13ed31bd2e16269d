package auth

import "github.com/desuex/fba-shipping/internal/config"

// TokenProvider supplies the access token for outbound FBA calls. Callers must
// not assume where the token comes from; any capability that can produce a
// token (config, secret store) satisfies this.
type TokenProvider interface {
	AccessToken() (string, error)
}

// ConfigError indicates a deployment defect: the process is missing
// configuration it needs to serve requests.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// ConfigProvider serves the token captured in the process config snapshot.
type ConfigProvider struct {
	cfg *config.Config
}

// NewConfigProvider returns a provider backed by cfg.
func NewConfigProvider(cfg *config.Config) *ConfigProvider {
	return &ConfigProvider{cfg: cfg}
}

// AccessToken returns the configured token, or a ConfigError if it is unset.
func (p *ConfigProvider) AccessToken() (string, error) {
	if p.cfg == nil || p.cfg.AccessToken == "" {
		return "", &ConfigError{Msg: "AMAZON_ACCESS_TOKEN is not set"}
	}
	return p.cfg.AccessToken, nil
}
