package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func newFakeClient(t *testing.T, objects ...*v1.Secret) *Client {
	t.Helper()
	cs := fake.NewClientset()
	for _, s := range objects {
		_, err := cs.CoreV1().Secrets(s.Namespace).Create(context.Background(), s, metav1.CreateOptions{})
		require.NoError(t, err)
	}
	return &Client{ClientSet: cs}
}

func TestCreateSecret(t *testing.T) {
	client := newFakeClient(t, &v1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "existing", Namespace: "default"}})
	ctx := context.Background()

	tests := []struct {
		name        string
		secretName  string
		data        map[string]string
		expectError bool
	}{
		{
			name:       "successfully creates secret",
			secretName: "mysecret",
			data:       map[string]string{"key": "value"},
		},
		{
			name:        "fails to create duplicate secret",
			secretName:  "existing",
			data:        map[string]string{"k": "v"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.CreateSecret(ctx, "default", tt.secretName, tt.data)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			secret, err := client.ClientSet.CoreV1().Secrets("default").Get(ctx, tt.secretName, metav1.GetOptions{})
			require.NoError(t, err)
			assert.Equal(t, []byte("value"), secret.Data["key"])
			assert.Equal(t, v1.SecretTypeOpaque, secret.Type)
		})
	}
}

func TestGetSecret(t *testing.T) {
	client := newFakeClient(t, &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "test", Namespace: "default"},
		Data:       map[string][]byte{"key": []byte("value")},
	})

	data, err := client.GetSecret(context.Background(), "default", "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"key": "value"}, data)

	_, err = client.GetSecret(context.Background(), "default", "missing")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestUpdateSecret(t *testing.T) {
	client := newFakeClient(t, &v1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "to-update", Namespace: "default"},
		Data:       map[string][]byte{"old": []byte("data")},
	})
	ctx := context.Background()

	err := client.UpdateSecret(ctx, "default", "to-update", map[string]string{"new": "value"})
	require.NoError(t, err)

	data, err := client.GetSecret(ctx, "default", "to-update")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"new": "value"}, data)

	err = client.UpdateSecret(ctx, "default", "missing", map[string]string{"x": "y"})
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestDeleteSecret(t *testing.T) {
	client := newFakeClient(t, &v1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "to-delete", Namespace: "default"}})
	ctx := context.Background()

	require.NoError(t, client.DeleteSecret(ctx, "default", "to-delete"))

	_, err := client.GetSecret(ctx, "default", "to-delete")
	assert.ErrorIs(t, err, ErrSecretNotFound)

	err = client.DeleteSecret(ctx, "default", "notfound")
	assert.ErrorIs(t, err, ErrSecretNotFound)
}
