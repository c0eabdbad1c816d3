package handlers

import (
	"bytes"
	"context"
	"io"
	"os"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/k8seed/internal/manifest"
)

// captureOutput captures stdout written while f runs.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// stubClient is a minimal cluster client for handler tests.
type stubClient struct {
	nodes    []corev1.Node
	nodesErr error
}

func (s *stubClient) Get(context.Context, manifest.Resource) (*unstructured.Unstructured, error) {
	return nil, nil
}

func (s *stubClient) DryRunApply(context.Context, manifest.Resource) (*unstructured.Unstructured, error) {
	return nil, nil
}

func (s *stubClient) Apply(context.Context, manifest.Resource) error {
	return nil
}

func (s *stubClient) Nodes(context.Context) ([]corev1.Node, error) {
	return s.nodes, s.nodesErr
}
