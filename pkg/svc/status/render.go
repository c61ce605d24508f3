package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sigs.k8s.io/yaml"
)

// Output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// ErrUnknownOutputFormat is returned when an unrecognized output format is specified.
var ErrUnknownOutputFormat = errors.New("unknown output format")

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatTable, FormatYAML, FormatJSON}
}

// Render writes report to w in format.
func Render(w io.Writer, report *Report, format string) error {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return renderTable(w, report)
	case FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal status to YAML: %w", err)
		}

		_, err = w.Write(data)
		if err != nil {
			return fmt.Errorf("write status: %w", err)
		}

		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(report)
		if err != nil {
			return fmt.Errorf("marshal status to JSON: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s (valid: %s)", ErrUnknownOutputFormat, format, strings.Join(Formats(), ", "))
	}
}

const (
	tabMinWidth = 0
	tabWidth    = 4
	tabPadding  = 2
)

func renderTable(w io.Writer, report *Report) error {
	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)

	cluster := report.Cluster
	state := "absent"

	if cluster.Exists {
		state = "running"
	}

	rows := [][]string{
		{"CLUSTER", "STATE", "CONTEXT"},
		{cluster.Name, state, cluster.Context},
	}

	if len(cluster.Nodes) > 0 || cluster.Error != "" {
		rows = append(rows, nil, []string{"NODE", "READY", "VERSION"})
		for _, node := range cluster.Nodes {
			rows = append(rows, []string{node.Name, yesNo(node.Ready), node.Version})
		}

		if cluster.Error != "" {
			rows = append(rows, []string{"-", "error", cluster.Error})
		}
	}

	if len(report.Addons) > 0 {
		rows = append(rows, nil, []string{"ADD-ON", "NAMESPACE", "RELEASE", "VERSION", "READY"})
		for _, addon := range report.Addons {
			rows = append(rows, []string{
				addon.Name, dash(addon.Namespace), withError(addon.Status, addon.Error),
				dash(addon.Version), yesNo(addon.Ready),
			})
		}
	}

	if len(report.Workloads) > 0 {
		rows = append(rows, nil, []string{"WORKLOAD", "NAMESPACE", "PRESENT", "READY"})
		for _, workload := range report.Workloads {
			rows = append(rows, []string{
				workload.Name, workload.Namespace, yesNo(workload.Present),
				withError(yesNo(workload.Ready), workload.Error),
			})
		}
	}

	if app := report.Application; app != nil {
		rows = append(rows, nil, []string{"APPLICATION", "SYNC", "HEALTH", "REVISION"})
		if app.Present {
			rows = append(rows, []string{app.Name, dash(app.Sync), dash(app.Health), dash(shortRevision(app.Revision))})
		} else {
			rows = append(rows, []string{app.Name, withError("-", app.Error), "-", "-"})
		}
	}

	if images := report.Images; images.Repository != "" {
		rows = append(rows, nil, []string{"REPOSITORY", "TAGS"})
		rows = append(rows, []string{images.Repository, withError(dash(strings.Join(images.Tags, ",")), images.Error)})
	}

	if len(report.Hosts) > 0 {
		rows = append(rows, nil, []string{"HOSTS"})
		for _, host := range report.Hosts {
			rows = append(rows, []string{host})
		}
	}

	for _, row := range rows {
		_, err := fmt.Fprintln(tw, strings.Join(row, "\t"))
		if err != nil {
			return fmt.Errorf("write status: %w", err)
		}
	}

	err := tw.Flush()
	if err != nil {
		return fmt.Errorf("flush status: %w", err)
	}

	return nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}

func dash(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func withError(value, errText string) string {
	if errText == "" {
		return value
	}

	return value + " (" + errText + ")"
}

const shortRevisionLength = 8

func shortRevision(revision string) string {
	if len(revision) > shortRevisionLength {
		return revision[:shortRevisionLength]
	}

	return revision
}
