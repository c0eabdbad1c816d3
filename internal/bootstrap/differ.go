package bootstrap

import (
	"context"
	"fmt"

	apiequality "k8s.io/apimachinery/pkg/api/equality"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/k8seed/internal/k8s"
	"github.com/imamik/k8seed/internal/manifest"
)

// Differ detects drift between a manifest and the live cluster object
// without ever mutating cluster state.
type Differ struct {
	client k8s.Client
}

// NewDiffer creates a Differ backed by the given cluster client.
func NewDiffer(client k8s.Client) *Differ {
	return &Differ{client: client}
}

// IsCurrent reports whether applying res would be a no-op. A missing live
// object is not current. For existing objects the manifest is applied in
// server-side dry-run mode and the result is compared semantically against
// the live object, so defaulted and server-managed fields never register
// as drift.
func (d *Differ) IsCurrent(ctx context.Context, res manifest.Resource) (bool, error) {
	live, err := d.client.Get(ctx, res)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read live state of %s: %w", res.ID(), err)
	}

	predicted, err := d.client.DryRunApply(ctx, res)
	if err != nil {
		return false, fmt.Errorf("dry-run apply of %s failed: %w", res.ID(), err)
	}

	return apiequality.Semantic.DeepEqual(comparable(live), comparable(predicted)), nil
}

// comparable strips the metadata the API server churns on every write so
// only fields that represent actual drift take part in the comparison.
func comparable(obj *unstructured.Unstructured) map[string]interface{} {
	content := obj.DeepCopy().Object
	unstructured.RemoveNestedField(content, "metadata", "managedFields")
	unstructured.RemoveNestedField(content, "metadata", "resourceVersion")
	unstructured.RemoveNestedField(content, "metadata", "generation")
	return content
}
