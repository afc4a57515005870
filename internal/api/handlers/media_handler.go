package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/service"
)

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

// UploadMedia attaches the multipart "files" of the request to post :id.
func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "Unable to parse form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return badRequest(c, "No files selected")
	}

	uploads := make([]service.Upload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return sendError(c, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return sendError(c, err)
		}
		uploads = append(uploads, service.Upload{FileName: fh.Filename, Data: data})
	}

	assets, err := h.s.AttachMedia(c.Context(), GetUserID(c), c.Params("id"), uploads)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(assets)
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	assets, err := h.s.ListMedia(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(assets)
}
