// Package k8s wraps the Kubernetes API operations the bootstrap pipeline
// depends on: live reads, server-side dry-run diffs, server-side applies,
// and node status listing. The pipeline core depends only on the Client
// interface, never on the transport.
package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/imamik/k8seed/internal/manifest"
)

// Client provides the four cluster capabilities the orchestrator consumes.
type Client interface {
	// Get fetches the live state of the resource. A missing object
	// surfaces as a NotFound API error.
	Get(ctx context.Context, res manifest.Resource) (*unstructured.Unstructured, error)

	// DryRunApply performs a server-side apply in dry-run mode and returns
	// the object the server would persist. Never mutates cluster state.
	DryRunApply(ctx context.Context, res manifest.Resource) (*unstructured.Unstructured, error)

	// Apply performs a server-side apply with forced field ownership.
	// Fields not specified in the manifest are left untouched on existing
	// objects.
	Apply(ctx context.Context, res manifest.Resource) error

	// Nodes lists the cluster nodes.
	Nodes(ctx context.Context) ([]corev1.Node, error)
}

// client implements Client using k8s.io/client-go.
type client struct {
	clientset     kubernetes.Interface
	dynamicClient dynamic.Interface
	mapper        meta.RESTMapper
	fieldManager  string
}

// NewFromKubeconfig creates a Client from a kubeconfig file. The
// fieldManager identifies this process as the field owner in server-side
// applies.
func NewFromKubeconfig(kubeconfigPath, fieldManager string) (Client, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery client: %w", err)
	}

	groupResources, err := restmapper.GetAPIGroupResources(discoveryClient)
	if err != nil {
		return nil, fmt.Errorf("failed to get API group resources: %w", err)
	}
	mapper := restmapper.NewDiscoveryRESTMapper(groupResources)

	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
		fieldManager:  fieldManager,
	}, nil
}

// NewFromClients creates a Client from pre-configured clients. This is
// useful for testing with fake clients.
func NewFromClients(
	clientset kubernetes.Interface,
	dynamicClient dynamic.Interface,
	mapper meta.RESTMapper,
	fieldManager string,
) Client {
	return &client{
		clientset:     clientset,
		dynamicClient: dynamicClient,
		mapper:        mapper,
		fieldManager:  fieldManager,
	}
}

// resourceFor resolves the dynamic resource interface for the object,
// accounting for namespaced vs cluster-scoped kinds.
func (c *client) resourceFor(res manifest.Resource) (dynamic.ResourceInterface, error) {
	gvk := res.Object.GroupVersionKind()

	mapping, err := c.mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to get REST mapping for %v: %w", gvk, err)
	}

	if mapping.Scope.Name() != meta.RESTScopeNameNamespace {
		return c.dynamicClient.Resource(mapping.Resource), nil
	}

	namespace := res.Namespace()
	if namespace == "" {
		namespace = metav1.NamespaceDefault
	}
	return c.dynamicClient.Resource(mapping.Resource).Namespace(namespace), nil
}

func (c *client) Get(ctx context.Context, res manifest.Resource) (*unstructured.Unstructured, error) {
	ri, err := c.resourceFor(res)
	if err != nil {
		return nil, err
	}
	return ri.Get(ctx, res.Name(), metav1.GetOptions{})
}

func (c *client) DryRunApply(ctx context.Context, res manifest.Resource) (*unstructured.Unstructured, error) {
	return c.patch(ctx, res, true)
}

func (c *client) Apply(ctx context.Context, res manifest.Resource) error {
	_, err := c.patch(ctx, res, false)
	return err
}

// patch performs a server-side apply, optionally in dry-run mode.
func (c *client) patch(ctx context.Context, res manifest.Resource, dryRun bool) (*unstructured.Unstructured, error) {
	ri, err := c.resourceFor(res)
	if err != nil {
		return nil, err
	}

	data, err := res.Object.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", res.ID(), err)
	}

	force := true
	opts := metav1.PatchOptions{
		FieldManager: c.fieldManager,
		Force:        &force,
	}
	if dryRun {
		opts.DryRun = []string{metav1.DryRunAll}
	}

	obj, err := ri.Patch(ctx, res.Name(), types.ApplyPatchType, data, opts)
	if err != nil {
		return nil, fmt.Errorf("server-side apply of %s failed: %w", res.ID(), err)
	}
	return obj, nil
}

func (c *client) Nodes(ctx context.Context) ([]corev1.Node, error) {
	nodeList, err := c.clientset.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}
	return nodeList.Items, nil
}
