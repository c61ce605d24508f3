package status

// Report is the collected state. Sections that could not be read carry an Error instead of
// failing the whole report.
type Report struct {
	Cluster     ClusterStatus      `json:"cluster"`
	Addons      []AddonStatus      `json:"addons,omitempty"`
	Workloads   []WorkloadStatus   `json:"workloads,omitempty"`
	Application *ApplicationStatus `json:"application,omitempty"`
	Images      ImageStatus        `json:"images"`
	Hosts       []string           `json:"hosts,omitempty"`
}

// ClusterStatus describes the k3d cluster and its nodes.
type ClusterStatus struct {
	Name    string       `json:"name"`
	Exists  bool         `json:"exists"`
	Context string       `json:"context"`
	Nodes   []NodeStatus `json:"nodes,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// NodeStatus is one Kubernetes node.
type NodeStatus struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Version string `json:"version,omitempty"`
}

// AddonStatus is the Helm release and workload readiness of one add-on.
type AddonStatus struct {
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace,omitempty"`
	Release   string `json:"release,omitempty"`
	Status    string `json:"status"`
	Chart     string `json:"chart,omitempty"`
	Version   string `json:"version,omitempty"`
	Ready     bool   `json:"ready"`
	Error     string `json:"error,omitempty"`
}

// WorkloadStatus is one application workload.
type WorkloadStatus struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Present   bool   `json:"present"`
	Ready     bool   `json:"ready"`
	Error     string `json:"error,omitempty"`
}

// ApplicationStatus is the Argo CD Application of the sample app.
type ApplicationStatus struct {
	Name     string `json:"name"`
	Present  bool   `json:"present"`
	Sync     string `json:"sync,omitempty"`
	Health   string `json:"health,omitempty"`
	Revision string `json:"revision,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ImageStatus lists the tags pushed to the cluster registry.
type ImageStatus struct {
	Repository string   `json:"repository"`
	Tags       []string `json:"tags,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Release status values reported when Helm has nothing to say.
const (
	StatusNotInstalled = "not installed"
	StatusDisabled     = "disabled"
	StatusUnknown      = "unknown"
)
