package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// Namespace builds a Namespace resource the same way a live apply would
// shape it: a typed object marshalled to YAML and fed back through the
// manifest decoder, rather than a hand-built minimal map. The
// kubernetes.io/metadata.name label matches what the API server sets.
func Namespace(name string) (Resource, error) {
	ns := corev1.Namespace{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Namespace",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: name,
			Labels: map[string]string{
				"kubernetes.io/metadata.name": name,
			},
		},
	}

	data, err := yaml.Marshal(ns)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to marshal namespace %s: %w", name, err)
	}

	resources, err := Decode(data)
	if err != nil {
		return Resource{}, fmt.Errorf("failed to decode namespace %s: %w", name, err)
	}
	if len(resources) != 1 {
		return Resource{}, fmt.Errorf("expected a single namespace document for %s, got %d", name, len(resources))
	}

	return resources[0], nil
}
