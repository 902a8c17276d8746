package mapview

const (
	// DefaultZoom is used when the map reports no zoom level.
	DefaultZoom = 13

	mediumZoomCutoff = 12
	largeZoomCutoff  = 15
)

// Tier groups zoom levels that share a marker size.
type Tier int

const (
	TierSmall Tier = iota
	TierMedium
	TierLarge
)

func (t Tier) String() string {
	switch t {
	case TierLarge:
		return "large"
	case TierMedium:
		return "medium"
	default:
		return "small"
	}
}

// IconSize is the rendered marker width and height in pixels.
func (t Tier) IconSize() int {
	switch t {
	case TierLarge:
		return 32
	case TierMedium:
		return 24
	default:
		return 16
	}
}

func NormalizeZoom(zoom int) int {
	if zoom <= 0 {
		return DefaultZoom
	}
	return zoom
}

func TierForZoom(zoom int) Tier {
	zoom = NormalizeZoom(zoom)
	switch {
	case zoom >= largeZoomCutoff:
		return TierLarge
	case zoom >= mediumZoomCutoff:
		return TierMedium
	default:
		return TierSmall
	}
}

func IconSize(zoom int) int {
	return TierForZoom(zoom).IconSize()
}
