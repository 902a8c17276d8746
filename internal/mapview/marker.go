package mapview

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"github.com/rfwilliams11/pool-table-finder/internal/model"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Icon struct {
	URL    string `json:"url"`
	Size   int    `json:"size"`
	Anchor Point  `json:"anchor"`
}

type Marker struct {
	ID       int64  `json:"id"`
	Position LatLng `json:"position"`
	Title    string `json:"title"`
	Icon     Icon   `json:"icon"`
	Popup    string `json:"popup"`
}

// MarkerSet is everything the browser needs to redraw the map at one zoom level.
type MarkerSet struct {
	Zoom     int      `json:"zoom"`
	Tier     string   `json:"tier"`
	IconSize int      `json:"icon_size"`
	Markers  []Marker `json:"markers"`
}

// MarkersQuery is the query string accepted by the markers endpoint.
type MarkersQuery struct {
	Zoom int `schema:"zoom" url:"zoom,omitempty"`
}

const ballSVG = `<svg width="%[1]d" height="%[1]d" viewBox="0 0 32 32" xmlns="http://www.w3.org/2000/svg">` +
	`<circle cx="16" cy="16" r="14" fill="#000000" stroke="#ffffff" stroke-width="2"/>` +
	`<circle cx="16" cy="11" r="4" fill="#ffffff"/>` +
	`<text x="16" y="14" text-anchor="middle" fill="#000000" font-size="10" font-weight="bold">8</text>` +
	`</svg>`

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div style="font-family: system-ui, sans-serif;">` +
		`<h3 style="margin: 0 0 8px 0; font-size: 16px; font-weight: 600;">{{.Name}}</h3>` +
		`<p style="margin: 0 0 4px 0; color: #666; font-size: 14px;">{{.Address}}</p>` +
		`<p style="margin: 0; font-size: 14px;"><strong>Pool tables:</strong> {{.PoolTableCount}}</p>` +
		`{{if .Notes}}<p style="margin: 4px 0 0 0; font-size: 14px; color: #666;">{{.Notes}}</p>{{end}}` +
		`</div>`))

// NewIcon returns the eight-ball marker scaled to size and anchored at its centre.
func NewIcon(size int) Icon {
	svg := fmt.Sprintf(ballSVG, size)
	return Icon{
		URL:    "data:image/svg+xml;charset=UTF-8," + url.PathEscape(svg),
		Size:   size,
		Anchor: Point{X: size / 2, Y: size / 2},
	}
}

// Popup renders the detail window shown when a marker is clicked.
func Popup(loc model.Location) string {
	var buf bytes.Buffer
	data := struct {
		Name           string
		Address        string
		PoolTableCount int
		Notes          string
	}{
		Name:           loc.Name,
		Address:        loc.Address,
		PoolTableCount: loc.PoolTableCount,
		Notes:          loc.Notes,
	}
	if err := popupTemplate.Execute(&buf, data); err != nil {
		return template.HTMLEscapeString(loc.Name)
	}
	return buf.String()
}

// BuildMarkers maps locations to a fresh marker set for zoom. It holds no
// state: the caller replaces whatever it drew before with the result.
func BuildMarkers(locations []model.Location, zoom int) MarkerSet {
	zoom = NormalizeZoom(zoom)
	tier := TierForZoom(zoom)
	icon := NewIcon(tier.IconSize())

	markers := make([]Marker, 0, len(locations))
	for _, loc := range locations {
		markers = append(markers, Marker{
			ID:       loc.ID,
			Position: LatLng{Lat: loc.Lat, Lng: loc.Lng},
			Title:    loc.Name,
			Icon:     icon,
			Popup:    Popup(loc),
		})
	}

	return MarkerSet{
		Zoom:     zoom,
		Tier:     tier.String(),
		IconSize: tier.IconSize(),
		Markers:  markers,
	}
}
