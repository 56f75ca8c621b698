// Package unity implements the DELL EMC Unity array-metrics protocol plugin.
//
// The plugin is driven by an input describing data tables (commands against
// the Unisphere REST API) and data fields (parameters of those commands),
// and by a configuration carrying the array address and credentials. Query
// execution logs in once per cycle, runs each distinct command at most once,
// and keeps an incremental aggregation position per metric path.
package unity

import (
	"errors"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultTimeout = 60 * time.Second

// Config is the parsed polling configuration for one array.
type Config struct {
	Hostname string
	Username string
	Password string

	Timeout  time.Duration
	Insecure bool

	// CatchupUnlimited lifts the six-sample accumulation bound on the
	// first-ever poll of a metric path.
	CatchupUnlimited bool
}

type rawConfig struct {
	Hostname string `json:"hostname"`
	Config   struct {
		Username         string `json:"username"`
		Password         string `json:"password"`
		TimeoutSeconds   *int   `json:"timeout"`
		Insecure         *bool  `json:"insecure"`
		CatchupUnlimited *bool  `json:"catchup_unlimited"`
	} `json:"config"`
}

// ParseConfig decodes a raw configuration blob. Unset options default to a
// 60s HTTP timeout, certificate verification disabled (arrays ship with
// self-signed certificates) and unlimited first-poll catch-up.
func ParseConfig(raw json.RawMessage) (*Config, error) {
	var rc rawConfig
	if err := json.Unmarshal(raw, &rc); err != nil {
		return nil, err
	}
	if rc.Hostname == "" {
		return nil, errors.New("config is missing hostname")
	}
	if rc.Config.Username == "" {
		return nil, errors.New("config is missing username")
	}

	cfg := &Config{
		Hostname:         rc.Hostname,
		Username:         rc.Config.Username,
		Password:         rc.Config.Password,
		Timeout:          defaultTimeout,
		Insecure:         true,
		CatchupUnlimited: true,
	}
	if rc.Config.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*rc.Config.TimeoutSeconds) * time.Second
	}
	if rc.Config.Insecure != nil {
		cfg.Insecure = *rc.Config.Insecure
	}
	if rc.Config.CatchupUnlimited != nil {
		cfg.CatchupUnlimited = *rc.Config.CatchupUnlimited
	}
	return cfg, nil
}

// BaseURL returns the API root for the configured array. A hostname without
// a scheme gets https.
func (c *Config) BaseURL() string {
	if strings.Contains(c.Hostname, "://") {
		return c.Hostname + "/api"
	}
	return "https://" + c.Hostname + "/api"
}

// Target returns the hostname reduced to a form usable as a state directory
// component.
func (c *Config) Target() string {
	target := c.Hostname
	if _, rest, ok := strings.Cut(target, "://"); ok {
		target = rest
	}
	return strings.ReplaceAll(target, "/", "_")
}
