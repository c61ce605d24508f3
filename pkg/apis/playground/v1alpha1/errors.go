package v1alpha1

import "errors"

// ErrInvalidAddonState is returned for an unknown add-on state.
var ErrInvalidAddonState = errors.New("invalid add-on state")

// ErrInvalidLoadStrategy is returned for an unknown image load strategy.
var ErrInvalidLoadStrategy = errors.New("invalid load strategy")

// ErrClusterNameInvalid is returned when the cluster name is not DNS-1123 compliant.
var ErrClusterNameInvalid = errors.New("cluster name is invalid")

// ErrInvalidPort is returned for a port outside 1..65535.
var ErrInvalidPort = errors.New("invalid port")

// ErrPortConflict is returned when two host ports are the same.
var ErrPortConflict = errors.New("host ports must differ")

// ErrInvalidNodeCount is returned for fewer than one server or a negative agent count.
var ErrInvalidNodeCount = errors.New("invalid node count")

// ErrInvalidDomain is returned for a cluster domain that is not a DNS subdomain.
var ErrInvalidDomain = errors.New("invalid cluster domain")

// ErrInvalidRepoURL is returned for a Git repository URL that does not parse.
var ErrInvalidRepoURL = errors.New("invalid git repository URL")

// ErrInvalidNamespace is returned for an application namespace that is not a DNS label.
var ErrInvalidNamespace = errors.New("invalid namespace")
