package client

import (
	"context"
	"errors"

	"tokenguard/internal/k8s"
)

// SecretStorage keeps values as the data keys of a single Kubernetes Secret.
// The Secret is created on first write.
type SecretStorage struct {
	client    k8s.SecretClient
	namespace string
	name      string
}

// NewSecretStorage returns a SecretStorage over namespace/name.
func NewSecretStorage(client k8s.SecretClient, namespace, name string) *SecretStorage {
	return &SecretStorage{client: client, namespace: namespace, name: name}
}

func (s *SecretStorage) Get(ctx context.Context, key string) (string, error) {
	data, err := s.client.GetSecret(ctx, s.namespace, s.name)
	if errors.Is(err, k8s.ErrSecretNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	v, ok := data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *SecretStorage) Set(ctx context.Context, key, value string) error {
	data, err := s.client.GetSecret(ctx, s.namespace, s.name)
	if errors.Is(err, k8s.ErrSecretNotFound) {
		return s.client.CreateSecret(ctx, s.namespace, s.name, map[string]string{key: value})
	}
	if err != nil {
		return err
	}

	data[key] = value
	return s.client.UpdateSecret(ctx, s.namespace, s.name, data)
}

func (s *SecretStorage) Remove(ctx context.Context, key string) error {
	data, err := s.client.GetSecret(ctx, s.namespace, s.name)
	if errors.Is(err, k8s.ErrSecretNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.client.UpdateSecret(ctx, s.namespace, s.name, data)
}
