package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"convertd/internal/convert"
	"convertd/internal/format"
	"convertd/internal/server/database"
	"convertd/internal/server/service"
)

// Handler contains the HTTP handlers for the conversion API.
type Handler struct {
	svc *service.ConvertService
	db  *database.DB // nil when running without a database
}

// NewHandler creates a new handler with the given dependencies.
func NewHandler(svc *service.ConvertService, db *database.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

// HandleConvert handles POST /convert.
// Accepts a multipart form with a "file" field, a "conversionType" field and
// optional tuning fields. Success streams the converted file back as an
// attachment; failures come back as a JSON envelope.
func (h *Handler) HandleConvert(c echo.Context) error {
	file, err := readFormFile(c, "file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, convert.Response{
			Success: false,
			Message: "no file uploaded",
		})
	}

	op := format.Operation(c.FormValue("conversionType"))
	resp := h.svc.Convert(c.Request().Context(), op, file, bindOptions(c))
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, resp)
	}

	return sendAttachment(c, resp.FileName, resp.ContentType, resp.Data)
}

// HandleBatchConvert handles POST /batch-convert.
// Accepts a multipart form with repeated "files" fields and the same tuning
// fields as /convert. The response is always the packed ZIP: a batch where
// every file fails still streams an archive with zero entries.
func (h *Handler) HandleBatchConvert(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return c.JSON(http.StatusBadRequest, convert.Response{
			Success: false,
			Message: "no files provided for batch conversion",
		})
	}

	var files []convert.File
	for _, fh := range form.File["files"] {
		f, err := openFormFile(fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, convert.Response{
				Success: false,
				Message: "failed to read uploaded file",
			})
		}
		files = append(files, f)
	}

	op := format.Operation(c.FormValue("conversionType"))
	_, archive := h.svc.ConvertBatch(c.Request().Context(), op, files, bindOptions(c))
	if archive == nil {
		return c.JSON(http.StatusInternalServerError, convert.Response{
			Success: false,
			Message: "failed to build batch archive",
		})
	}

	return sendAttachment(c, "converted_files.zip", "application/zip", archive)
}

// HandleSupportedFormats handles GET /supported-formats.
func (h *Handler) HandleSupportedFormats(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"imageInput":      format.ImageInputExtensions(),
		"imageOutput":     format.ImageOutputExtensions(),
		"documentInput":   format.DocumentInputExtensions(),
		"documentOutput":  format.DocumentOutputExtensions(),
		"conversionTypes": format.Operations(),
	})
}

// HandleConversionOptions handles GET /conversion-options?fileName=...
// Returns the operations legal for the classified file name. Unknown
// extensions yield an empty list, not an error.
func (h *Handler) HandleConversionOptions(c echo.Context) error {
	fileName := c.QueryParam("fileName")
	if fileName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "fileName query parameter is required",
		})
	}

	ops := format.LegalOperations(format.Classify(fileName))
	if ops == nil {
		ops = []format.Operation{}
	}
	return c.JSON(http.StatusOK, ops)
}

// HandleHealth handles GET /health.
func (h *Handler) HandleHealth(c echo.Context) error {
	status := "healthy"
	dbStatus := "disabled"

	if h.db != nil {
		dbStatus = "connected"
		if err := h.db.HealthCheck(c.Request().Context()); err != nil {
			status = "degraded"
			dbStatus = fmt.Sprintf("error: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":   status,
		"database": dbStatus,
	})
}

// HandleStats handles GET /stats.
// Returns aggregate conversion statistics from the history table.
func (h *Handler) HandleStats(c echo.Context) error {
	stats, err := h.svc.GetStats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to retrieve stats",
		})
	}
	if stats == nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "conversion history is disabled",
		})
	}

	recent, err := h.svc.RecentConversions(c.Request().Context(), 10)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "failed to retrieve stats",
		})
	}
	activity := make([]echo.Map, 0, len(recent))
	for _, r := range recent {
		activity = append(activity, echo.Map{
			"operation": r.Operation,
			"input":     r.InputName,
			"success":   r.Success,
			"createdAt": r.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalConversions":      stats.TotalConversions,
		"successfulConversions": stats.SuccessfulConversions,
		"bytesIn":               stats.BytesIn,
		"bytesOut":              stats.BytesOut,
		"recent":                activity,
	})
}

// bindOptions reads the tuning fields from the form, falling back to the
// documented defaults for absent or malformed values.
func bindOptions(c echo.Context) convert.Options {
	opts := convert.DefaultOptions()
	opts.Quality = formInt(c, "quality", opts.Quality)
	opts.Width = formInt(c, "width", 0)
	opts.Height = formInt(c, "height", 0)
	opts.DPI = formInt(c, "dpi", opts.DPI)
	opts.OneClickCompression = formBool(c, "oneClickCompression", false)
	opts.MaintainAspectRatio = formBool(c, "maintainAspectRatio", true)
	return opts
}

func formInt(c echo.Context, field string, fallback int) int {
	if val := c.FormValue(field); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func formBool(c echo.Context, field string, fallback bool) bool {
	if val := c.FormValue(field); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func readFormFile(c echo.Context, field string) (convert.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return convert.File{}, err
	}
	return openFormFile(fh)
}

func openFormFile(fh *multipart.FileHeader) (convert.File, error) {
	src, err := fh.Open()
	if err != nil {
		return convert.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return convert.File{}, err
	}

	return convert.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func sendAttachment(c echo.Context, name, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, name))
	return c.Blob(http.StatusOK, contentType, data)
}
