package objects

import (
	"errors"
	"net/url"
	"strconv"

	"bucket-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bucket objects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the object routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/", h.HandleList)
	group.Get("/*", h.HandleDownload)
	group.Put("/*", h.HandleUpload)
	group.Delete("/*", h.HandleDelete)
}

// ListResponse is the body of a listing.
type ListResponse struct {
	Bucket string   `json:"bucket"`
	Keys   []string `json:"keys"`
}

// HandleList lists the keys in the bucket.
// @Summary List Objects
// @Description Lists the keys in the bucket, optionally restricted to a prefix.
// @Tags objects
// @Produce json
// @Param prefix query string false "Key prefix"
// @Success 200 {object} objects.ListResponse
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /objects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var (
		keys []string
		err  error
	)
	if prefix := c.Query("prefix"); prefix != "" {
		keys = []string{}
		for key, iterErr := range h.service.Keys(c.Context(), prefix) {
			if iterErr != nil {
				err = iterErr
				break
			}
			keys = append(keys, key)
		}
	} else {
		keys, err = h.service.List(c.Context())
	}
	if err != nil {
		l.Error("Listing failed", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(ListResponse{Bucket: h.service.Bucket(), Keys: keys})
}

// HandleDownload streams an object body, or its metadata with ?meta=true.
// @Summary Download Object
// @Description Streams the object stored under the key. With meta=true only the metadata is returned.
// @Tags objects
// @Produce octet-stream
// @Param key path string true "Object key"
// @Param meta query boolean false "Return metadata only"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not Found"
// @Router /objects/{key} [get]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key, ok := keyParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key is required"})
	}

	if c.QueryBool("meta") {
		info, err := h.service.Stat(c.Context(), key)
		if err != nil {
			l.Warn("Stat failed", zap.String("key", key), zap.Error(err))
			return errorResponse(c, err)
		}
		return c.JSON(info)
	}

	rc, info, err := h.service.Open(c.Context(), key)
	if err != nil {
		l.Warn("Download failed", zap.String("key", key), zap.Error(err))
		return errorResponse(c, err)
	}

	if info.ContentType != "" {
		c.Set(fiber.HeaderContentType, info.ContentType)
	} else {
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	}
	if info.ETag != "" {
		c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
	}
	// The stream is closed by fasthttp once the body is sent.
	return c.SendStream(rc, int(info.Size))
}

// HandleUpload stores the multipart file field "file" under the key.
// @Summary Upload Object
// @Description Uploads the multipart form field "file" under the key, replacing any existing object.
// @Tags objects
// @Accept multipart/form-data
// @Produce json
// @Param key path string true "Object key"
// @Param file formData file true "Content"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /objects/{key} [put]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key, ok := keyParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key is required"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "multipart field 'file' is required"})
	}
	f, err := fh.Open()
	if err != nil {
		l.Error("Failed to open uploaded part", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer f.Close()

	if err := h.service.PutReader(c.Context(), key, f, fh.Size, fh.Header.Get(fiber.HeaderContentType)); err != nil {
		l.Error("Upload failed", zap.String("key", key), zap.Error(err))
		return errorResponse(c, err)
	}

	l.Info("Object uploaded", zap.String("key", key), zap.Int64("size", fh.Size))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bucket": h.service.Bucket(),
		"key":    key,
		"size":   fh.Size,
	})
}

// HandleDelete removes an object. Absent keys also answer 204.
// @Summary Delete Object
// @Description Deletes the object stored under the key. Deleting an absent key succeeds.
// @Tags objects
// @Param key path string true "Object key"
// @Success 204
// @Failure 502 {object} map[string]string "Storage unreachable"
// @Router /objects/{key} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key, ok := keyParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key is required"})
	}

	if err := h.service.Delete(c.Context(), key); err != nil {
		l.Error("Delete failed", zap.String("key", key), zap.Error(err))
		return errorResponse(c, err)
	}

	l.Info("Object deleted", zap.String("key", key))
	return c.SendStatus(fiber.StatusNoContent)
}

func keyParam(c *fiber.Ctx) (string, bool) {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}

// StatusFor maps an error kind to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrRemoteObjectNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTransport):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if kind := KindOf(err); kind != nil {
		body["kind"] = kind.Error()
	}
	return c.Status(StatusFor(err)).JSON(body)
}
