package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL or host:port of the API server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the CLI client.
type ClientConfig struct {
	// Adapter contains the server address and timeouts.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// TokenFile is where the CLI keeps the access token between runs.
	// Env: CLIENT_TOKEN_FILE
	TokenFile string `env:"CLIENT_TOKEN_FILE"`

	// Args are the positional arguments left after flag parsing: the
	// command name followed by its arguments.
	Args []string
}

const (
	defaultClientAddress = "localhost:8080"
	defaultClientTimeout = 10 * time.Second
	defaultTokenFile     = ".fin-tracker-token"
)

// GetClientConfig builds and validates the client configuration from the
// .env file, environment variables and the given command-line arguments.
//
// Flags:
//
//	-s server address (host:port or URL)
//	-timeout request timeout
//	-token-file path of the stored access token
func GetClientConfig(args []string) (*ClientConfig, error) {
	if err := loadDotEnv(defaultDotEnvPath); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("fin-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	address := fs.String("s", "", "Server address")
	timeout := fs.Duration("timeout", 0, "Request timeout")
	tokenFile := fs.String("token-file", "", "Access token file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if *address != "" {
		cfg.Adapter.HTTPAddress = *address
	}
	if *timeout != 0 {
		cfg.Adapter.RequestTimeout = *timeout
	}
	if *tokenFile != "" {
		cfg.TokenFile = *tokenFile
	}
	cfg.Args = fs.Args()

	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = defaultClientAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = defaultClientTimeout
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile
		if home, err := os.UserHomeDir(); err == nil {
			cfg.TokenFile = home + string(os.PathSeparator) + defaultTokenFile
		}
	}

	return cfg, cfg.validate()
}
