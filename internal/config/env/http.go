package env

import (
	"fmt"
	"os"
	"strings"

	"github.com/igtm/baseball/internal/config"
)

const (
	portEnvName      = "PORT"
	staticDirEnvName = "STATIC_DIR"
	originsEnvName   = "ALLOWED_ORIGINS"
	corsEnvName      = "CORS_ORIGINS"

	defaultPort      = "8080"
	defaultStaticDir = "./client/dist"
)

type httpConfig struct {
	port      string
	staticDir string
	origins   []string
	cors      []string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(portEnvName)
	if port == "" {
		port = defaultPort
	}
	if strings.ContainsAny(port, ": ") {
		return nil, fmt.Errorf("invalid %s %q: want a bare port number", portEnvName, port)
	}

	staticDir := os.Getenv(staticDirEnvName)
	if staticDir == "" {
		staticDir = defaultStaticDir
	}

	origins := splitList(os.Getenv(originsEnvName))
	cors := splitList(os.Getenv(corsEnvName))
	if len(cors) == 0 {
		cors = schemeOrigins(origins)
	}

	return &httpConfig{
		port:      port,
		staticDir: staticDir,
		origins:   origins,
		cors:      cors,
	}, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// schemeOrigins turns websocket host patterns into browser origins for CORS.
// A bare "*" stays as is; entries that already carry a scheme are kept.
func schemeOrigins(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p == "*" || strings.Contains(p, "://") {
			out = append(out, p)
			continue
		}
		out = append(out, "https://"+p, "http://"+p)
	}
	return out
}

func (cfg *httpConfig) Address() string {
	return ":" + cfg.port
}

func (cfg *httpConfig) StaticDir() string {
	return cfg.staticDir
}

func (cfg *httpConfig) OriginPatterns() []string {
	return cfg.origins
}

// CORSOrigins lists full origins (scheme://host) allowed on /api. Empty means
// any origin.
func (cfg *httpConfig) CORSOrigins() []string {
	return cfg.cors
}
