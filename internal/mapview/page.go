package mapview

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/index.html static
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "templates/index.html"))

// DefaultCenter is downtown San Francisco.
var DefaultCenter = LatLng{Lat: 37.7749, Lng: -122.4194}

type PageData struct {
	APIKey       string
	Phase        Phase
	Center       LatLng
	Zoom         int
	ErrorMessage string
	ErrorHint    string
	// Transitions and MarkerPhases are JSON handed to the browser script,
	// which drives the mount with the same table as Phase.Next.
	Transitions  string
	MarkerPhases string
}

// Page renders the map view shell. Markers are loaded by the browser script.
type Page struct {
	apiKey string
}

func NewPage(apiKey string) *Page {
	return &Page{apiKey: apiKey}
}

func (p *Page) Data() PageData {
	return PageData{
		APIKey:       p.apiKey,
		Phase:        InitialPhase(p.apiKey),
		Center:       DefaultCenter,
		Zoom:         DefaultZoom,
		ErrorMessage: LoadErrorMessage,
		ErrorHint:    LoadErrorHint,
		Transitions:  mustJSON(Transitions()),
		MarkerPhases: mustJSON(MarkerPhases()),
	}
}

func mustJSON(v interface{}) string {
	out, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(out)
}

func (p *Page) Render(w io.Writer) error {
	return pageTemplate.Execute(w, p.Data())
}

// StaticFS serves the browser script and stylesheet.
func StaticFS() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
