// Package vault provides the optional Vault-backed secret source for the
// store password and the speech API key. When Vault is disabled, the
// values from the environment are used as-is.
package vault

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"
)

// Client wraps the HashiCorp Vault API for KV secret retrieval.
type Client struct {
	client  *api.Client
	kvMount string
}

// Config holds Vault configuration
type Config struct {
	Address string
	Token   string
	KVMount string
}

// NewClient creates a new Vault client
func NewClient(cfg *Config) (*Client, error) {
	config := api.DefaultConfig()
	config.Address = cfg.Address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Client{
		client:  client,
		kvMount: cfg.KVMount,
	}, nil
}

// Secrets holds the secret material the service needs at startup.
type Secrets struct {
	DBPassword   string
	SpeechAPIKey string
}

// ReadSecrets reads the startup secrets from a KV v2 path. Keys:
// "db_password" and "speech_api_key".
func (c *Client) ReadSecrets(ctx context.Context, path string) (*Secrets, error) {
	secret, err := c.client.KVv2(c.kvMount).Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets at %s/%s: %w", c.kvMount, path, err)
	}

	secrets := &Secrets{}
	if v, ok := secret.Data["db_password"].(string); ok {
		secrets.DBPassword = v
	}
	if v, ok := secret.Data["speech_api_key"].(string); ok {
		secrets.SpeechAPIKey = v
	}

	return secrets, nil
}

// HealthCheck verifies connectivity to the Vault server.
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}
	if !health.Initialized || health.Sealed {
		return fmt.Errorf("vault is not ready (initialized=%t, sealed=%t)", health.Initialized, health.Sealed)
	}
	return nil
}
