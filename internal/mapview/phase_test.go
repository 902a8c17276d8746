package mapview

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialPhase(t *testing.T) {
	assert.Equal(t, PhaseLoading, InitialPhase("key"))
	assert.Equal(t, PhaseError, InitialPhase(""))
	assert.Equal(t, PhaseError, InitialPhase("   "))
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from  Phase
		event Event
		want  Phase
	}{
		{PhaseLoading, EventLibraryLoaded, PhaseReady},
		{PhaseLoading, EventLibraryFailed, PhaseError},
		{PhaseReady, EventLibraryFailed, PhaseReady},
		{PhaseReady, EventLibraryLoaded, PhaseReady},
		{PhaseError, EventLibraryLoaded, PhaseError},
		{PhaseError, EventLibraryFailed, PhaseError},
		{PhaseLoading, Event("unknown"), PhaseLoading},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.Next(tt.event), "%s + %s", tt.from, tt.event)
	}
}

func TestRendersMarkers(t *testing.T) {
	assert.True(t, PhaseReady.RendersMarkers())
	assert.False(t, PhaseLoading.RendersMarkers())
	assert.False(t, PhaseError.RendersMarkers())
}

func TestTransitionsTable(t *testing.T) {
	table := Transitions()

	assert.Equal(t, map[Phase]map[Event]Phase{
		PhaseLoading: {
			EventLibraryLoaded: PhaseReady,
			EventLibraryFailed: PhaseError,
		},
	}, table)

	for from, byEvent := range table {
		for e, to := range byEvent {
			assert.Equal(t, from.Next(e), to)
		}
	}
}

func TestMarkerPhases(t *testing.T) {
	assert.Equal(t, []Phase{PhaseReady}, MarkerPhases())
}

func TestPageDataCarriesPhaseTable(t *testing.T) {
	data := NewPage("abc123").Data()

	assert.JSONEq(t, `{"loading":{"library_loaded":"ready","library_failed":"error"}}`, data.Transitions)
	assert.JSONEq(t, `["ready"]`, data.MarkerPhases)
}

func TestPageRender(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPage("abc123").Render(&buf))

		html := buf.String()
		assert.Contains(t, html, `data-api-key="abc123"`)
		assert.Contains(t, html, `data-phase="loading"`)
		assert.Contains(t, html, `data-lat="37.7749"`)
		assert.Contains(t, html, `data-lng="-122.4194"`)
		assert.Contains(t, html, `data-zoom="13"`)
		assert.Contains(t, html, `data-transitions="{&#34;loading&#34;:{&#34;library_failed&#34;:&#34;error&#34;,&#34;library_loaded&#34;:&#34;ready&#34;}}"`)
		assert.Contains(t, html, `data-marker-phases="[&#34;ready&#34;]"`)
		assert.Contains(t, html, `max="20"`)
		assert.Contains(t, html, `<div id="map-error" class="overlay" hidden>`)
	})

	t.Run("missing key", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewPage("").Render(&buf))

		html := buf.String()
		assert.Contains(t, html, `data-phase="error"`)
		assert.Contains(t, html, "Failed to load Google Maps. Please check your API key.")
		assert.Contains(t, html, `<div id="map-loading" class="overlay" hidden>`)
	})
}

func TestScriptDispatchesTableEvents(t *testing.T) {
	script, err := fs.ReadFile(StaticFS(), "app.js")
	require.NoError(t, err)

	for _, e := range events {
		assert.Contains(t, string(script), "dispatch('"+string(e)+"')")
	}
	assert.NotContains(t, string(script), "cfg.phase === 'loading'")
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"app.js", "app.css"} {
		_, err := fs.Stat(StaticFS(), name)
		assert.NoError(t, err, name)
	}
}
