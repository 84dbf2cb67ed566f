package sendemails

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"mailblast/internal/bulk"
	resp "mailblast/internal/lib/api/response"
	sl "mailblast/internal/lib/logger"
	"mailblast/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Emails  []string `json:"emails" validate:"required,min=1"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

type Response struct {
	resp.Response
	FailedEmails []string `json:"failedEmails"`
}

type BulkSender interface {
	SendAll(recipients []string, subject, body string) (models.BulkSummary, error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	sender BulkSender,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.sendemails.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validate.Struct(req); err != nil {
			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("No valid emails provided"))

			return
		}

		summary, err := sender.SendAll(req.Emails, req.Subject, req.Message)
		if err != nil {
			if errors.Is(err, bulk.ErrNoRecipients) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("No valid emails provided"))

				return
			}

			log.Error("failed to send emails", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error(err.Error()))

			return
		}

		log.Info("bulk send finished",
			slog.Int("sent", summary.SuccessCount),
			slog.Int("failed", len(summary.FailedEmails)),
		)

		render.JSON(w, r, Response{
			Response: resp.OK(fmt.Sprintf(
				"Emails sent: %d, Failed: %d",
				summary.SuccessCount,
				len(summary.FailedEmails),
			)),
			FailedEmails: summary.FailedEmails,
		})
	}
}
