package k8s

import (
	"context"
	"errors"
	"fmt"

	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ErrSecretNotFound is returned when the requested Secret does not exist.
var ErrSecretNotFound = errors.New("secret not found")

// SecretClient is the subset of Client used by the secret provider and token storage,
// so they can be tested against fakes
type SecretClient interface {
	CreateSecret(ctx context.Context, namespace, name string, data map[string]string) error
	GetSecret(ctx context.Context, namespace, name string) (map[string]string, error)
	UpdateSecret(ctx context.Context, namespace, name string, data map[string]string) error
	DeleteSecret(ctx context.Context, namespace, name string) error
}

var _ SecretClient = (*Client)(nil)

// CreateSecret creates a new opaque Secret holding the given key-value pairs
func (c *Client) CreateSecret(ctx context.Context, namespace, name string, data map[string]string) error {
	secret := &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name: name, //this must be set
		},
		Data: toBytes(data),
		Type: v1.SecretTypeOpaque,
	}

	_, err := c.ClientSet.CoreV1().Secrets(namespace).Create(ctx, secret, metav1.CreateOptions{})
	if err != nil {
		return fmt.Errorf("failed to create secret %s/%s: %w", namespace, name, err)
	}
	return nil
}

// GetSecret retrieves a Secret as a map[string]string
func (c *Client) GetSecret(ctx context.Context, namespace, name string) (map[string]string, error) {
	secret, err := c.ClientSet.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrSecretNotFound, namespace, name)
		}
		return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
	}

	result := make(map[string]string, len(secret.Data))
	for k, v := range secret.Data {
		result[k] = string(v) // convert from []byte to string
	}

	return result, nil
}

// UpdateSecret replaces the data of an existing Secret
func (c *Client) UpdateSecret(ctx context.Context, namespace, name string, data map[string]string) error {
	secret, err := c.ClientSet.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("%w: %s/%s", ErrSecretNotFound, namespace, name)
		}
		return fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
	}

	secret.Data = toBytes(data)
	secret.StringData = nil

	_, err = c.ClientSet.CoreV1().Secrets(namespace).Update(ctx, secret, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("failed to update secret %s/%s: %w", namespace, name, err)
	}

	return nil
}

// DeleteSecret deletes a Secret
func (c *Client) DeleteSecret(ctx context.Context, namespace, name string) error {
	err := c.ClientSet.CoreV1().Secrets(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("%w: %s/%s", ErrSecretNotFound, namespace, name)
		}
		return fmt.Errorf("failed to delete secret %s/%s: %w", namespace, name, err)
	}

	return nil
}

func toBytes(data map[string]string) map[string][]byte {
	out := make(map[string][]byte, len(data))
	for k, v := range data {
		out[k] = []byte(v)
	}
	return out
}
