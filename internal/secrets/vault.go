package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"go.uber.org/zap"
)

// SecretGetter is the part of azsecrets.Client the vault client uses.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// VaultClient reads secrets from Azure Key Vault with an optional TTL cache.
type VaultClient struct {
	client SecretGetter
	logger *zap.Logger
	ttl    time.Duration
	cached bool

	mu    sync.Mutex
	cache map[string]cachedSecret
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// VaultConfig holds configuration for the vault client
type VaultConfig struct {
	VaultName    string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// NewVaultClient creates a Key Vault client authenticated with
// DefaultAzureCredential (environment, managed identity or Azure CLI).
func NewVaultClient(cfg *VaultConfig, logger *zap.Logger) (*VaultClient, error) {
	if cfg.VaultName == "" {
		return nil, fmt.Errorf("vault name is required")
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		logger.Error("Failed to create Azure credential", zap.Error(err))
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	vaultURL := fmt.Sprintf("https://%s.vault.azure.net/", cfg.VaultName)
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		logger.Error("Failed to create Key Vault client", zap.Error(err))
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	logger.Info("Azure Key Vault client initialized",
		zap.String("vault_url", vaultURL),
		zap.Bool("cache_enabled", cfg.CacheEnabled),
	)
	return NewVaultClientWith(client, cfg.CacheEnabled, cfg.CacheTTL, logger), nil
}

// NewVaultClientWith wraps an existing getter.
func NewVaultClientWith(client SecretGetter, cacheEnabled bool, ttl time.Duration, logger *zap.Logger) *VaultClient {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &VaultClient{
		client: client,
		logger: logger,
		ttl:    ttl,
		cached: cacheEnabled,
		cache:  make(map[string]cachedSecret),
	}
}

// GetSecret retrieves the latest version of a secret.
func (v *VaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	if v.cached {
		v.mu.Lock()
		entry, ok := v.cache[name]
		if ok && time.Now().After(entry.expiresAt) {
			delete(v.cache, name)
			ok = false
		}
		v.mu.Unlock()
		if ok {
			return entry.value, nil
		}
	}

	resp, err := v.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		v.logger.Error("Failed to get secret from Key Vault",
			zap.String("secret_name", name),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to get secret %q: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %q: %w", name, ErrSecretNotFound)
	}

	if v.cached {
		v.mu.Lock()
		v.cache[name] = cachedSecret{value: *resp.Value, expiresAt: time.Now().Add(v.ttl)}
		v.mu.Unlock()
	}
	return *resp.Value, nil
}

// ClearCache drops every cached secret.
func (v *VaultClient) ClearCache() {
	v.mu.Lock()
	v.cache = make(map[string]cachedSecret)
	v.mu.Unlock()
}
