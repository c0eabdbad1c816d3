package release

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"helm.sh/helm/v3/pkg/action"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// Status describes a Helm release installed in the cluster.
type Status struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Chart      string `json:"chart"`
	AppVersion string `json:"appVersion,omitempty"`
	Status     string `json:"status"`
}

// ListInstalled returns all Helm releases across all namespaces. Used by
// the doctor command to report what the release-apply phase has installed.
func ListInstalled(kubeconfigPath string, log logrus.FieldLogger) ([]Status, error) {
	restConfig, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	actionConfig := new(action.Configuration)
	getter := &restClientGetter{config: restConfig}
	if err := actionConfig.Init(getter, "", os.Getenv("HELM_DRIVER"), log.Debugf); err != nil {
		return nil, fmt.Errorf("failed to init helm action config: %w", err)
	}

	list := action.NewList(actionConfig)
	list.All = true
	list.AllNamespaces = true

	releases, err := list.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	statuses := make([]Status, 0, len(releases))
	for _, rel := range releases {
		status := Status{
			Name:      rel.Name,
			Namespace: rel.Namespace,
			Status:    rel.Info.Status.String(),
		}
		if rel.Chart != nil && rel.Chart.Metadata != nil {
			status.Chart = fmt.Sprintf("%s-%s", rel.Chart.Metadata.Name, rel.Chart.Metadata.Version)
			status.AppVersion = rel.Chart.Metadata.AppVersion
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// restClientGetter implements a basic RESTClientGetter for Helm.
type restClientGetter struct {
	config *rest.Config
}

func (g *restClientGetter) ToRESTConfig() (*rest.Config, error) {
	return g.config, nil
}

func (g *restClientGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(g.config)
	if err != nil {
		return nil, err
	}
	return memory.NewMemCacheClient(discoveryClient), nil
}

func (g *restClientGetter) ToRESTMapper() (meta.RESTMapper, error) {
	discoveryClient, err := g.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	return restmapper.NewDeferredDiscoveryRESTMapper(discoveryClient), nil
}

func (g *restClientGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return clientcmd.NewDefaultClientConfig(*clientcmdapi.NewConfig(), &clientcmd.ConfigOverrides{})
}
