package rest

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rfwilliams11/pool-table-finder/internal/mapview"
	"github.com/rfwilliams11/pool-table-finder/util/tracing"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

func (api *API) MapRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.MapPage))
	mux.Method(http.MethodGet, "/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(mapview.StaticFS()))))

	return mux
}

// MapPage renders the map shell. The browser script fetches markers itself.
func (api *API) MapPage(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := tracing.FromContext(r.Context())

	var buf bytes.Buffer
	if err := api.page.Render(&buf); err != nil {
		return api.respondWithError(err, "unable to render map", values.SystemErr, &tc)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}
