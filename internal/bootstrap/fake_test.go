package bootstrap

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/imamik/k8seed/internal/manifest"
)

// fakeClient is an in-memory cluster. Apply stores the manifest, Get
// returns the stored object with server-managed metadata attached, and
// DryRunApply predicts the manifest as the server would persist it. That
// makes a second apply of an unchanged manifest register as current, the
// same way a real API server behaves.
type fakeClient struct {
	mu      sync.Mutex
	objects map[string]*unstructured.Unstructured

	nodes func(call int) ([]corev1.Node, error)

	getErr    map[string]error
	dryRunErr map[string]error
	applyErr  map[string]error

	applyCalls []string
	nodeCalls  int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects:   map[string]*unstructured.Unstructured{},
		getErr:    map[string]error{},
		dryRunErr: map[string]error{},
		applyErr:  map[string]error{},
	}
}

func (c *fakeClient) Get(_ context.Context, res manifest.Resource) (*unstructured.Unstructured, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.getErr[res.ID()]; err != nil {
		return nil, err
	}
	stored, ok := c.objects[res.ID()]
	if !ok {
		return nil, apierrors.NewNotFound(schema.GroupResource{Resource: res.Kind()}, res.Name())
	}

	live := stored.DeepCopy()
	live.SetResourceVersion("100")
	_ = unstructured.SetNestedSlice(live.Object, []interface{}{}, "metadata", "managedFields")
	return live, nil
}

func (c *fakeClient) DryRunApply(_ context.Context, res manifest.Resource) (*unstructured.Unstructured, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dryRunErr[res.ID()]; err != nil {
		return nil, err
	}
	predicted := res.Object.DeepCopy()
	predicted.SetResourceVersion("101")
	return predicted, nil
}

func (c *fakeClient) Apply(_ context.Context, res manifest.Resource) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyErr[res.ID()]; err != nil {
		return err
	}
	c.objects[res.ID()] = res.Object.DeepCopy()
	c.applyCalls = append(c.applyCalls, res.ID())
	return nil
}

func (c *fakeClient) Nodes(_ context.Context) ([]corev1.Node, error) {
	c.mu.Lock()
	c.nodeCalls++
	call := c.nodeCalls
	c.mu.Unlock()
	return c.nodes(call)
}

// testResource builds a minimal manifest for the given identity.
func testResource(kind, namespace, name string) manifest.Resource {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "v1",
		"kind":       kind,
		"metadata": map[string]interface{}{
			"name": name,
		},
	}}
	if namespace != "" {
		obj.SetNamespace(namespace)
	}
	return manifest.Resource{Object: obj}
}

// readyNode returns a node reporting the given Ready condition status.
func readyNode(status corev1.ConditionStatus) corev1.Node {
	return corev1.Node{
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func testLogger() (logrus.FieldLogger, *logtest.Hook) {
	return logtest.NewNullLogger()
}
