package k8s

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Adding the following variables, so that the code can be tested
var (
	inClusterConfig      = rest.InClusterConfig
	buildConfigFromFlags = clientcmd.BuildConfigFromFlags
	newForConfig         = kubernetes.NewForConfig
)

// Client reads and writes Kubernetes Secrets
type Client struct {
	ClientSet kubernetes.Interface
}

// NewClient creates a new Kubernetes client. It first tries to create an in-cluster config
// and falls back to $KUBECONFIG or ~/.kube/config
func NewClient() (*Client, error) {
	config, err := inClusterConfig()
	if err != nil {
		config, err = buildConfigFromFlags("", kubeconfigPath())
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	return NewClientWithConfig(config)
}

// NewClientWithConfig Function to use injected config for testing
func NewClientWithConfig(config *rest.Config) (*Client, error) {
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, err
	}
	return &Client{ClientSet: clientset}, nil
}

func kubeconfigPath() string {
	if v := os.Getenv("KUBECONFIG"); v != "" {
		return v
	}
	return filepath.Join(os.Getenv("HOME"), ".kube", "config")
}
