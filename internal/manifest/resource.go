// Package manifest models the declarative resources the bootstrap pipeline
// applies and the sources they are loaded from. Discovery (files, remote
// bundles) is decoupled from application: loaders produce an ordered,
// in-memory list of Resources that the apply machinery consumes.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/yaml"
)

// Resource is a single named, typed manifest. Identity is the
// (kind, namespace, name) triple.
type Resource struct {
	Object *unstructured.Unstructured
}

// Kind returns the resource kind.
func (r Resource) Kind() string {
	return r.Object.GetKind()
}

// Namespace returns the resource namespace, empty for cluster-scoped kinds.
func (r Resource) Namespace() string {
	return r.Object.GetNamespace()
}

// Name returns the resource name.
func (r Resource) Name() string {
	return r.Object.GetName()
}

// ID returns the kind/namespace/name identity string used in logs and
// error messages. Cluster-scoped resources render as kind/name.
func (r Resource) ID() string {
	if ns := r.Namespace(); ns != "" {
		return fmt.Sprintf("%s/%s/%s", r.Kind(), ns, r.Name())
	}
	return fmt.Sprintf("%s/%s", r.Kind(), r.Name())
}

// Decode parses multi-document YAML into Resources, preserving document
// order. Empty documents are skipped.
func Decode(data []byte) ([]Resource, error) {
	decoder := yaml.NewYAMLOrJSONDecoder(bytes.NewReader(data), 4096)

	var resources []Resource
	docIndex := 0
	for {
		var obj unstructured.Unstructured
		if err := decoder.Decode(&obj); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode manifest document %d: %w", docIndex, err)
		}

		docIndex++
		if len(obj.Object) == 0 {
			continue
		}
		if obj.GetKind() == "" {
			return nil, fmt.Errorf("manifest document %d has no kind set", docIndex-1)
		}

		resources = append(resources, Resource{Object: &obj})
	}

	return resources, nil
}

// LoadFile reads a manifest file and decodes its documents.
func LoadFile(path string) ([]Resource, error) {
	// #nosec G304 - path comes from operator-supplied configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	resources, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resources, nil
}

// ListDir returns the manifest file paths directly under dir, sorted by
// file name so application order is deterministic. Only .yaml and .yml
// files are considered. A missing directory surfaces as os.ErrNotExist so
// callers can decide whether the source is optional.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	return paths, nil
}

// LoadDir loads every manifest file under dir in file-name order.
func LoadDir(dir string) ([]Resource, error) {
	paths, err := ListDir(dir)
	if err != nil {
		return nil, err
	}

	var resources []Resource
	for _, path := range paths {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		resources = append(resources, loaded...)
	}

	return resources, nil
}

// FilterKind returns only the resources of the given kind, preserving
// order. Everything else in the input is discarded.
func FilterKind(resources []Resource, kind string) []Resource {
	var filtered []Resource
	for _, r := range resources {
		if r.Kind() == kind {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
