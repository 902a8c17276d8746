package mapview

import "strings"

// Phase is the lifecycle state of one map mount.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

type Event string

const (
	EventLibraryLoaded Event = "library_loaded"
	EventLibraryFailed Event = "library_failed"
)

const (
	LoadErrorMessage = "Failed to load Google Maps. Please check your API key."
	LoadErrorHint    = "Make sure you have set GOOGLE_MAPS_API_KEY in your environment."
)

// InitialPhase is loading when a maps key is configured. Without one the
// library can never load, so the mount starts in the error phase.
func InitialPhase(apiKey string) Phase {
	if strings.TrimSpace(apiKey) == "" {
		return PhaseError
	}
	return PhaseLoading
}

// Next applies e to p. Error is terminal for the mount and ready ignores late
// load failures.
func (p Phase) Next(e Event) Phase {
	if p != PhaseLoading {
		return p
	}
	switch e {
	case EventLibraryLoaded:
		return PhaseReady
	case EventLibraryFailed:
		return PhaseError
	default:
		return p
	}
}

func (p Phase) RendersMarkers() bool {
	return p == PhaseReady
}

var (
	phases = []Phase{PhaseLoading, PhaseReady, PhaseError}
	events = []Event{EventLibraryLoaded, EventLibraryFailed}
)

// Transitions lists every phase change Next makes, keyed by phase and then
// event. Pairs that leave the phase unchanged are omitted, so a phase with no
// entry is terminal.
func Transitions() map[Phase]map[Event]Phase {
	out := make(map[Phase]map[Event]Phase)
	for _, p := range phases {
		for _, e := range events {
			next := p.Next(e)
			if next == p {
				continue
			}
			if out[p] == nil {
				out[p] = make(map[Event]Phase)
			}
			out[p][e] = next
		}
	}
	return out
}

// MarkerPhases returns the phases in which markers are drawn.
func MarkerPhases() []Phase {
	var out []Phase
	for _, p := range phases {
		if p.RendersMarkers() {
			out = append(out, p)
		}
	}
	return out
}
