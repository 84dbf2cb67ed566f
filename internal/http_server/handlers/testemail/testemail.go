package testemail

import (
	"log/slog"
	"net/http"

	resp "mailblast/internal/lib/api/response"
	"mailblast/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Dispatcher interface {
	Send(to, subject, body string) models.SendResult
}

// New sends a single message to the fixed test recipient so an
// operator can verify the relay credentials end to end.
func New(log *slog.Logger, dispatcher Dispatcher, recipient string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.testemail.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		res := dispatcher.Send(recipient, "Test Email", "This is a test email!")

		log.Info("test email dispatched", slog.Bool("delivered", res.Delivered))

		render.JSON(w, r, resp.Response{
			Success: res.Delivered,
			Message: res.Detail,
		})
	}
}
