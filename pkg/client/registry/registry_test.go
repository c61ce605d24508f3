package registry_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gitops-playground/playctl/pkg/client/registry"
	"github.com/google/go-containerregistry/pkg/name"
	ggcrregistry "github.com/google/go-containerregistry/pkg/registry"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRegistry(t *testing.T) string {
	t.Helper()

	server := httptest.NewServer(ggcrregistry.New())
	t.Cleanup(server.Close)

	return strings.TrimPrefix(server.URL, "http://")
}

func pushRandomImage(t *testing.T, ref string) string {
	t.Helper()

	img, err := random.Image(256, 1)
	require.NoError(t, err)

	parsed, err := name.ParseReference(ref, name.Insecure)
	require.NoError(t, err)

	require.NoError(t, remote.Write(parsed, img))

	digest, err := img.Digest()
	require.NoError(t, err)

	return digest.String()
}

func TestDigest(t *testing.T) {
	t.Parallel()

	host := startRegistry(t)
	want := pushRandomImage(t, host+"/albums:latest")

	got, err := registry.Digest(context.Background(), host+"/albums:latest")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = registry.Digest(context.Background(), host+"/albums:missing")
	require.ErrorIs(t, err, registry.ErrImageNotFound)
}

func TestListTagsAndCatalog(t *testing.T) {
	t.Parallel()

	host := startRegistry(t)
	pushRandomImage(t, host+"/albums:latest")
	pushRandomImage(t, host+"/albums:v1")

	tags, err := registry.ListTags(context.Background(), host+"/albums")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"latest", "v1"}, tags)

	repos, err := registry.Catalog(context.Background(), host)
	require.NoError(t, err)
	assert.Equal(t, []string{"albums"}, repos)
}

func TestWaitForReady(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		host := startRegistry(t)
		require.NoError(t, registry.WaitForReady(context.Background(), host, 5*time.Second))
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(ggcrregistry.New())
		host := strings.TrimPrefix(server.URL, "http://")
		server.Close()

		err := registry.WaitForReady(context.Background(), host, 1500*time.Millisecond)
		require.Error(t, err)
	})

	t.Run("empty endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Catalog(context.Background(), "")
		require.ErrorIs(t, err, registry.ErrEndpointRequired)
	})
}
