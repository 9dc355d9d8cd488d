package health

import (
	"net/http"

	"condotel/infras/postgres"
	"condotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	db *postgres.Connection
}

func New(db *postgres.Connection) Handler {
	return Handler{db: db}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health reports service liveness and database reachability.
// @Summary Health check
// @Description Report service liveness and database reachability.
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message "Service is healthy"
// @Failure 503 {object} response.Error
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := handler.db.Read.PingContext(r.Context()); err != nil {
		response.WithMessage(w, http.StatusServiceUnavailable, "database unreachable")

		return
	}

	response.WithMessage(w, http.StatusOK, "ok")
}
