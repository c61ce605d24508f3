// Package hosts maintains a block of playground host names in a hosts file.
//
// The block is delimited by marker comments naming the cluster, so several playgrounds
// can share one hosts file and every line outside the block is left untouched.
package hosts

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gitops-playground/playctl/pkg/fsutil"
)

// DefaultIP is the address the ingress ports are published on.
const DefaultIP = "127.0.0.1"

const defaultFileMode fs.FileMode = 0o644

// ErrNoHostnames is returned when Ensure is called without host names.
var ErrNoHostnames = errors.New("no host names given")

// BeginMarker opens the managed block of cluster.
func BeginMarker(cluster string) string {
	return "# BEGIN playctl " + cluster
}

// EndMarker closes the managed block of cluster.
func EndMarker(cluster string) string {
	return "# END playctl " + cluster
}

// Ensure writes the managed block of cluster mapping hostnames to ip. It reports whether
// the file changed. Permission errors wrap fs.ErrPermission.
func Ensure(path, cluster, ip string, hostnames []string) (bool, error) {
	if len(hostnames) == 0 {
		return false, ErrNoHostnames
	}

	current, err := read(path)
	if err != nil {
		return false, err
	}

	updated := Render(current, cluster, ip, hostnames)

	return write(path, current, updated)
}

// Remove deletes the managed block of cluster. It reports whether the file changed.
func Remove(path, cluster string) (bool, error) {
	current, err := read(path)
	if err != nil {
		return false, err
	}

	if len(current) == 0 {
		return false, nil
	}

	return write(path, current, Strip(current, cluster))
}

// Lookup returns the host names in the managed block of cluster.
func Lookup(path, cluster string) ([]string, error) {
	current, err := read(path)
	if err != nil {
		return nil, err
	}

	var names []string

	inside := false

	for _, line := range strings.Split(string(current), "\n") {
		switch strings.TrimSpace(line) {
		case BeginMarker(cluster):
			inside = true

			continue
		case EndMarker(cluster):
			inside = false

			continue
		}

		if fields := strings.Fields(line); inside && len(fields) > 1 {
			names = append(names, fields[1:]...)
		}
	}

	return names, nil
}

// Render returns content with the managed block of cluster replaced, or appended when
// it does not exist yet.
func Render(content []byte, cluster, ip string, hostnames []string) []byte {
	var block strings.Builder

	block.WriteString(BeginMarker(cluster) + "\n")

	for _, name := range hostnames {
		fmt.Fprintf(&block, "%s\t%s\n", ip, name)
	}

	block.WriteString(EndMarker(cluster) + "\n")

	lines, start := splitBlock(content, cluster)

	var out bytes.Buffer

	for i, line := range lines {
		if i == start {
			out.WriteString(block.String())
		}

		out.WriteString(line)
	}

	if start < 0 {
		if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
			out.WriteByte('\n')
		}

		out.WriteString(block.String())
	} else if start == len(lines) {
		out.WriteString(block.String())
	}

	return out.Bytes()
}

// Strip returns content without the managed block of cluster.
func Strip(content []byte, cluster string) []byte {
	lines, _ := splitBlock(content, cluster)

	return []byte(strings.Join(lines, ""))
}

// splitBlock returns the lines of content, each with its newline, with the managed block
// of cluster removed, and the index at which the block stood or -1. A begin marker with no
// end marker is dropped on its own and the lines after it are kept.
func splitBlock(content []byte, cluster string) ([]string, int) {
	raw := strings.SplitAfter(string(content), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}

	kept := make([]string, 0, len(raw))
	start := -1

	var pending []string

	inside := false

	for _, line := range raw {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == BeginMarker(cluster):
			kept = append(kept, pending...)
			pending = pending[:0]
			inside = true

			if start < 0 {
				start = len(kept)
			}
		case trimmed == EndMarker(cluster) && inside:
			pending = pending[:0]
			inside = false
		case inside:
			pending = append(pending, line)
		default:
			kept = append(kept, line)
		}
	}

	return append(kept, pending...), start
}

func read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read hosts file %s: %w", path, err)
	}

	return data, nil
}

func write(path string, current, updated []byte) (bool, error) {
	if bytes.Equal(current, updated) {
		return false, nil
	}

	err := fsutil.WriteFileAtomic(path, updated, defaultFileMode)
	if err != nil {
		return false, fmt.Errorf("update hosts file %s: %w", path, err)
	}

	return true, nil
}
