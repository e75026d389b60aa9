package hasher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aleister1102/piholewatch/internal/datastore"
	"github.com/aleister1102/piholewatch/internal/pihole"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePihole serves a login endpoint and a mutable set of resource
// endpoints, mimicking the Pi-hole API surface the pipeline talks to.
type fakePihole struct {
	mu        sync.Mutex
	resources map[string]string
	failures  map[string]bool
	logins    int
}

func newFakePihole(endpoints []string) *fakePihole {
	resources := make(map[string]string, len(endpoints))
	for _, endpoint := range endpoints {
		resources[endpoint] = `{"value":"initial","took":0.001}`
	}
	return &fakePihole{
		resources: resources,
		failures:  make(map[string]bool),
	}
}

func (f *fakePihole) setResource(endpoint, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resources[endpoint] = body
}

func (f *fakePihole) failEndpoint(endpoint string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[endpoint] = true
}

func (f *fakePihole) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.URL.Path == "/api/auth" {
			f.logins++
			_ = json.NewEncoder(w).Encode(map[string]any{
				"session": map[string]any{"sid": "test-sid", "validity": 300},
			})
			return
		}

		assert.Equal(t, "test-sid", r.Header.Get(pihole.SIDHeader))

		if f.failures[r.URL.Path] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, ok := f.resources[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}
}

type pipelineFixture struct {
	pipeline  *Pipeline
	server    *fakePihole
	hashStore *datastore.HashStore
	endpoints []string
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	endpoints := []string{"/api/config", "/api/dhcp/leases", "/api/groups", "/api/lists", "/api/domains", "/api/clients"}
	fake := newFakePihole(endpoints)

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := pihole.NewClientBuilder(zerolog.Nop()).
		WithBaseURL(server.URL).
		WithPassword("secret").
		Build()

	stateDir := t.TempDir()
	hashStore := datastore.NewHashStore(filepath.Join(stateDir, "config.md5"), zerolog.Nop())
	sessionStore := datastore.NewSessionStore(filepath.Join(stateDir, "sid.json"), zerolog.Nop())

	return &pipelineFixture{
		pipeline:  NewPipeline(client, hashStore, sessionStore, endpoints, zerolog.Nop()),
		server:    fake,
		hashStore: hashStore,
		endpoints: endpoints,
	}
}

func TestPipeline_FirstRunThenUnchangedThenChanged(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	first := fx.pipeline.Check(ctx)
	require.Equal(t, StatusFirstRun, first.Status)
	assert.NotEmpty(t, first.SummaryHash)
	assert.Empty(t, first.PreviousHash)

	stored, err := fx.hashStore.ReadPrevious()
	require.NoError(t, err)
	assert.Equal(t, first.SummaryHash, stored)

	second := fx.pipeline.Check(ctx)
	require.Equal(t, StatusUnchanged, second.Status)
	assert.Equal(t, second.SummaryHash, second.PreviousHash)
	assert.Equal(t, first.SummaryHash, second.SummaryHash)

	fx.server.setResource("/api/domains", `{"value":"edited"}`)
	third := fx.pipeline.Check(ctx)
	require.Equal(t, StatusChanged, third.Status)
	assert.Equal(t, first.SummaryHash, third.PreviousHash)
	assert.NotEqual(t, third.PreviousHash, third.SummaryHash)
}

func TestPipeline_TookChurnDoesNotTriggerChange(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	fx.pipeline.Check(ctx)
	for _, endpoint := range fx.endpoints {
		fx.server.setResource(endpoint, `{"took":99.9,"value":"initial"}`)
	}

	result := fx.pipeline.Check(ctx)
	assert.Equal(t, StatusUnchanged, result.Status)
}

func TestPipeline_FetchFailureDoesNotPersist(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	first := fx.pipeline.Check(ctx)
	require.Equal(t, StatusFirstRun, first.Status)

	// Fail the 4th of the six configured endpoints.
	fx.server.failEndpoint("/api/lists")
	fx.server.setResource("/api/config", `{"value":"edited"}`)

	failed := fx.pipeline.Check(ctx)
	assert.Equal(t, StatusError, failed.Status)
	assert.Empty(t, failed.SummaryHash)
	assert.NotEmpty(t, failed.Message)

	// Previous hash remains readable and untouched for the next run.
	stored, err := fx.hashStore.ReadPrevious()
	require.NoError(t, err)
	assert.Equal(t, first.SummaryHash, stored)
}

func TestPipeline_ReusesCachedSession(t *testing.T) {
	fx := newPipelineFixture(t)
	ctx := context.Background()

	fx.pipeline.Check(ctx)
	fx.pipeline.Check(ctx)

	assert.Equal(t, 1, fx.server.logins)
}

func TestPipeline_AuthFailureIsError(t *testing.T) {
	endpoints := []string{"/api/config"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := pihole.NewClientBuilder(zerolog.Nop()).
		WithBaseURL(server.URL).
		WithPassword("wrong").
		Build()

	stateDir := t.TempDir()
	pipeline := NewPipeline(
		client,
		datastore.NewHashStore(filepath.Join(stateDir, "config.md5"), zerolog.Nop()),
		datastore.NewSessionStore(filepath.Join(stateDir, "sid.json"), zerolog.Nop()),
		endpoints,
		zerolog.Nop(),
	)

	result := pipeline.Check(context.Background())
	assert.Equal(t, StatusError, result.Status)
}
