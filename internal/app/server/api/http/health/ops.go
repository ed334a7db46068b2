package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check endpoint",
		Description: "Returns the health status of the service",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) keepAliveOp() huma.Operation {
	return huma.Operation{
		OperationID: "keep-alive",
		Method:      http.MethodGet,
		Path:        "/auth/keep-alive",
		Summary:     "Database keep-alive",
		Description: "Runs SELECT 1 against the database",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
