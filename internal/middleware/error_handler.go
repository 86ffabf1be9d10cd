package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/storefront-email-reports/internal/mailer"
	"github.com/anyulbade/storefront-email-reports/internal/report"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// MapError translates internal failures into HTTP responses without
// leaking query or template details to the caller.
func MapError(err error) (int, ErrorResponse) {
	if errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound, ErrorResponse{Error: "resource not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Error().Err(err).Str("code", pgErr.Code).Msg("database error")
		return http.StatusInternalServerError, ErrorResponse{Error: "database error"}
	}

	var unknownTag *report.UnknownTagError
	var resolution *report.TagResolutionError
	if errors.As(err, &unknownTag) || errors.As(err, &resolution) {
		log.Error().Err(err).Msg("report rendering failed")
		return http.StatusInternalServerError, ErrorResponse{Error: "report rendering failed"}
	}

	var delivery *mailer.DeliveryError
	if errors.As(err, &delivery) {
		log.Error().Err(err).Msg("mail delivery failed")
		return http.StatusBadGateway, ErrorResponse{Error: "mail delivery failed"}
	}

	log.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			status, resp := MapError(c.Errors.Last().Err)
			c.JSON(status, resp)
		}
	}
}
