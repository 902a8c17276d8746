package rest

import (
	"net/http"
	"time"

	"github.com/rfwilliams11/pool-table-finder/internal/model"
	"github.com/rfwilliams11/pool-table-finder/util"
	"github.com/rfwilliams11/pool-table-finder/util/values"
)

// isoMillis matches the ISO-8601 form browsers produce for Date values.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// HealthCheck reports liveness only. It never touches the database.
func (api *API) HealthCheck(_ http.ResponseWriter, _ *http.Request) *ServerResponse {
	return &ServerResponse{
		Message:    "ok",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: model.HealthStatus{
			Status:    "OK",
			Timestamp: time.Now().UTC().Format(isoMillis),
		},
	}
}
