package portforward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/portforward"
)

var errStream = errors.New("lost connection to pod")

// fakeForwarder signals ready at once and runs until stop is closed or fail fires.
type fakeForwarder struct {
	stop  <-chan struct{}
	ready chan struct{}
	fail  chan struct{}
	ports []portforward.ForwardedPort
}

func newFakeForwarder(session *Session) *fakeForwarder {
	return &fakeForwarder{
		stop:  session.stop,
		ready: make(chan struct{}),
		fail:  make(chan struct{}),
		ports: []portforward.ForwardedPort{{Local: 43210, Remote: 8080}},
	}
}

func (f *fakeForwarder) ForwardPorts() error {
	close(f.ready)

	select {
	case <-f.stop:
		return nil
	case <-f.fail:
		return errStream
	}
}

func (f *fakeForwarder) GetPorts() ([]portforward.ForwardedPort, error) {
	return f.ports, nil
}

func waitFinished(t *testing.T, session *Session) {
	t.Helper()

	select {
	case <-session.finished:
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder still running")
	}
}

func TestSession_CloseTwice(t *testing.T) {
	t.Parallel()

	session := newSession()
	fw := newFakeForwarder(session)

	require.NoError(t, session.serve(context.Background(), fw, fw.ready))
	assert.Equal(t, 43210, session.LocalPort)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
}

func TestSession_CloseTwiceKeepsError(t *testing.T) {
	t.Parallel()

	session := newSession()
	fw := newFakeForwarder(session)

	require.NoError(t, session.serve(context.Background(), fw, fw.ready))

	close(fw.fail)
	waitFinished(t, session)

	require.ErrorIs(t, session.Close(), errStream)
	require.ErrorIs(t, session.Close(), errStream)
}

func TestSession_StopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	session := newSession()
	fw := newFakeForwarder(session)

	require.NoError(t, session.serve(ctx, fw, fw.ready))

	cancel()
	waitFinished(t, session)

	require.NoError(t, session.Close())
}

func TestSession_CancelledBeforeReady(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := newSession()
	fw := newFakeForwarder(session)

	err := session.serve(ctx, fw, make(chan struct{}))

	require.ErrorIs(t, err, context.Canceled)
	waitFinished(t, session)
}

func TestSession_NoPorts(t *testing.T) {
	t.Parallel()

	session := newSession()
	fw := newFakeForwarder(session)
	fw.ports = nil

	err := session.serve(context.Background(), fw, fw.ready)

	require.ErrorIs(t, err, errNoForwardedPort)
	waitFinished(t, session)
}
