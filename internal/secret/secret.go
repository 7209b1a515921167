// Package secret resolves the shared key the server verifies tokens with.
// The key is read once at startup and never changes while the process runs.
package secret

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tokenguard/internal/config"
	"tokenguard/internal/k8s"
)

const (
	// SourceEnv reads the secret from the process environment.
	SourceEnv = "env"
	// SourceKubernetes reads the secret from a key of a Kubernetes Secret.
	SourceKubernetes = "kubernetes"

	// DefaultEnvName is the environment variable consulted by EnvProvider when no name is set.
	DefaultEnvName = "JWT_SECRET"
)

var (
	// ErrSecretMissing is returned when the configured source holds no secret.
	ErrSecretMissing = errors.New("verification secret is missing")
	// ErrUnknownSource is returned for an unsupported secret source.
	ErrUnknownSource = errors.New("unknown secret source")
)

// Provider returns the verification secret.
type Provider interface {
	Secret(ctx context.Context) ([]byte, error)
}

// EnvProvider reads the secret from an environment variable.
type EnvProvider struct {
	Name string
}

// Secret implements Provider.
func (p EnvProvider) Secret(_ context.Context) ([]byte, error) {
	name := p.Name
	if name == "" {
		name = DefaultEnvName
	}

	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil, fmt.Errorf("%w: environment variable %s is not set", ErrSecretMissing, name)
	}
	return []byte(v), nil
}

// KubernetesProvider reads the secret from one key of a Kubernetes Secret.
type KubernetesProvider struct {
	Client    k8s.SecretClient
	Namespace string
	Name      string
	Key       string
}

// Secret implements Provider.
func (p KubernetesProvider) Secret(ctx context.Context) ([]byte, error) {
	data, err := p.Client.GetSecret(ctx, p.Namespace, p.Name)
	if err != nil {
		if errors.Is(err, k8s.ErrSecretNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrSecretMissing, err)
		}
		return nil, err
	}

	v := data[p.Key]
	if v == "" {
		return nil, fmt.Errorf("%w: key %q not found in secret %s/%s", ErrSecretMissing, p.Key, p.Namespace, p.Name)
	}
	return []byte(v), nil
}

// newK8sClient is swapped in tests
var newK8sClient = func() (k8s.SecretClient, error) {
	return k8s.NewClient()
}

// NewProvider builds the Provider selected by cfg.Source.
func NewProvider(cfg config.SecretConfig) (Provider, error) {
	switch strings.ToLower(cfg.Source) {
	case SourceEnv:
		return EnvProvider{Name: cfg.EnvName}, nil
	case SourceKubernetes:
		client, err := newK8sClient()
		if err != nil {
			return nil, fmt.Errorf("kubernetes secret source: %w", err)
		}
		return KubernetesProvider{
			Client:    client,
			Namespace: cfg.Namespace,
			Name:      cfg.Name,
			Key:       cfg.Key,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, cfg.Source)
	}
}

// Resolve builds the configured Provider and reads the secret once.
func Resolve(ctx context.Context, cfg config.SecretConfig) ([]byte, error) {
	p, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return p.Secret(ctx)
}
