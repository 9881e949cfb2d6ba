package startup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leguplabs/pythia/pkg/logging"
)

type testDependency struct {
	name      string
	dependsOn []string
	failures  int
	started   *[]string
	stopped   *[]string
}

func (d *testDependency) GetName() string {
	return d.name
}

func (d *testDependency) DependsOn() []string {
	return d.dependsOn
}

func (d *testDependency) Start(ctx context.Context) error {
	if d.failures > 0 {
		d.failures--
		return errors.New(d.name + " unavailable")
	}
	*d.started = append(*d.started, d.name)
	return nil
}

func (d *testDependency) Stop(ctx context.Context) error {
	*d.stopped = append(*d.stopped, d.name)
	return nil
}

func TestStartRespectsDependencyOrder(t *testing.T) {
	var started, stopped []string

	s := New(logging.NewNop(), 1)
	s.AddDependency(&testDependency{name: "http", dependsOn: []string{"database", "cache"}, started: &started, stopped: &stopped})
	s.AddDependency(&testDependency{name: "database", started: &started, stopped: &stopped})
	s.AddDependency(&testDependency{name: "cache", started: &started, stopped: &stopped})

	require.NoError(t, s.Start(context.Background()))

	// http was registered first but waits on its dependencies.
	assert.Equal(t, []string{"database", "cache", "http"}, started)
}

func TestStopReversesStartOrder(t *testing.T) {
	var started, stopped []string

	s := New(logging.NewNop(), 1)
	s.AddDependency(&testDependency{name: "database", started: &started, stopped: &stopped})
	s.AddDependency(&testDependency{name: "http", dependsOn: []string{"database"}, started: &started, stopped: &stopped})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	assert.Equal(t, []string{"http", "database"}, stopped)
}

func TestStartRetriesUntilMaxAttempts(t *testing.T) {
	var started, stopped []string

	s := New(logging.NewNop(), 2)
	s.AddDependency(&testDependency{name: "database", failures: 1, started: &started, stopped: &stopped})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []string{"database"}, started)
}

func TestStartFailsAfterMaxAttempts(t *testing.T) {
	var started, stopped []string

	s := New(logging.NewNop(), 2)
	s.AddDependency(&testDependency{name: "database", failures: 5, started: &started, stopped: &stopped})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
