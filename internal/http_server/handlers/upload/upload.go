package upload

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"mailblast/internal/extract"
	resp "mailblast/internal/lib/api/response"
	sl "mailblast/internal/lib/logger"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Response struct {
	resp.Response
	Emails []string `json:"emails"`
}

const maxUploadSize = 10 << 20 // 10 MiB

// New accepts a multipart upload in field "file", spools it to
// uploadDir, extracts candidate addresses and always removes the
// spooled file afterwards. Removal failure is logged, never fatal.
func New(log *slog.Logger, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.upload.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		file, header, err := r.FormFile("file")
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("No file uploaded"))

			return
		}
		defer file.Close()

		path, err := spool(uploadDir, io.LimitReader(file, maxUploadSize))
		if err != nil {
			log.Error("failed to store uploaded file", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error(err.Error()))

			return
		}
		defer func() {
			if err := os.Remove(path); err != nil {
				log.Error("failed to remove uploaded file", sl.Err(err))
			}
		}()

		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("failed to read uploaded file", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error(err.Error()))

			return
		}

		emails, err := extract.Emails(data, filepath.Ext(header.Filename))
		if err != nil {
			if errors.Is(err, extract.ErrUnsupportedExtension) {
				log.Warn("unsupported file extension", slog.String("filename", header.Filename))

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Unsupported file extension: "+filepath.Ext(header.Filename)))

				return
			}

			log.Error("failed to parse uploaded file", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error(err.Error()))

			return
		}

		log.Info("file processed", slog.Int("emails", len(emails)))

		render.JSON(w, r, Response{
			Response: resp.OK("File processed"),
			Emails:   emails,
		})
	}
}

func spool(dir string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "upload-*")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
