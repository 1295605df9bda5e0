// internal/vault/vault.go
//
// Vault client wrapper for Atelier.
//
// Context
// -------
//   - Concurrency-safe wrapper around the HashiCorp Vault Go SDK.
//   - Adds simple KV-v2 reads with per-key caching so the boot path does
//     not hammer Vault for the same secret.
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(ctx)                  // during boot.
//  2. pw,  err := cli.GetKV(ctx, path, key, ttl)  // anywhere in the app.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – initial token (falls back to ~/.vault-token).
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// Client is safe for concurrent use.  Create once at startup.  The zero
// value is invalid; construct with New.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]cached // "<path>#<key>" → value + expiry
}

type cached struct {
	val string
	exp time.Time
}

// New constructs a Vault client from the standard environment variables.
func New(ctx context.Context) (*Client, error) {
	cfg := vault.DefaultConfig()
	if cfg.Error != nil {
		return nil, cfg.Error
	}
	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	token := os.Getenv("VAULT_TOKEN")
	if token == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			if b, rerr := os.ReadFile(filepath.Join(home, ".vault-token")); rerr == nil {
				token = strings.TrimSpace(string(b))
			}
		}
	}
	if token == "" {
		return nil, errors.New("vault: no token in VAULT_TOKEN or ~/.vault-token")
	}
	api.SetToken(token)

	return &Client{api: api, cache: make(map[string]cached, 8)}, nil
}

// GetKV reads one key from a KV-v2 secret, caching the value for ttl.
// The path is the full mount-relative location, e.g. "secret/data/db".
func (c *Client) GetKV(ctx context.Context, path, key string, ttl time.Duration) (string, error) {
	cacheKey := path + "#" + key

	c.cacheMu.RLock()
	if hit, ok := c.cache[cacheKey]; ok && time.Now().Before(hit.exp) {
		c.cacheMu.RUnlock()
		return hit.val, nil
	}
	c.cacheMu.RUnlock()

	sec, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", err
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("vault: no secret at %s", path)
	}

	// KV-v2 nests the payload one level under "data".
	data := sec.Data
	if inner, ok := sec.Data["data"].(map[string]any); ok {
		data = inner
	}
	raw, ok := data[key]
	if !ok {
		return "", fmt.Errorf("vault: key %q not found at %s", key, path)
	}
	val, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: key %q at %s is not a string", key, path)
	}

	c.cacheMu.Lock()
	c.cache[cacheKey] = cached{val: val, exp: time.Now().Add(ttl)}
	c.cacheMu.Unlock()

	return val, nil
}
