package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"upgradedash/internal/http/middleware"
	"upgradedash/internal/ingest"
	"upgradedash/internal/service"
)

// UploadCSV ingests one uploaded CSV file (multipart/form-data, field name:
// file) and returns the batch summary.
func UploadCSV(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILE_TYPE", "file must have a .csv extension")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		uploadedBy := ""
		if user := middleware.CurrentUser(c); user != nil {
			uploadedBy = user.Username
		}

		summary, err := svc.ProcessCSV(c.UserContext(), data, fh.Filename, uploadedBy)
		if err != nil {
			switch {
			case errors.Is(err, ingest.ErrInvalidEncoding):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ENCODING", "file must be UTF-8 encoded")
			case errors.Is(err, ingest.ErrNoValidRows):
				return writeError(c, fiber.StatusBadRequest, "NO_VALID_ROWS", "no valid rows found in file")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(summary)
	}
}

// ListUploads returns upload history with limit & offset.
func ListUploads(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DownloadUpload redirects to a pre-signed URL for an archived CSV file.
func DownloadUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.PresignDownload(c.UserContext(), c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUploadIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
			case errors.Is(err, service.ErrUploadNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "upload not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect(url, fiber.StatusFound)
	}
}

// DownloadTemplate serves the blank CSV template as an attachment.
func DownloadTemplate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+ingest.TemplateFilename+`"`)
		c.Type("csv")
		return c.Send(ingest.TemplateCSV())
	}
}
