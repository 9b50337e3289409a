package middleware

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/prepwise/prepwise_api/services"
)

const (
	pdfMIME             = "application/pdf"
	uploadField         = "file"
	uploadFileKey       = "uploadedFile"
	megabyte      int64 = 1024 * 1024
)

// UploadPDF accepts at most one PDF under the "file" field, no larger than
// maxSize. Requests without a file pass through so the handler can reject
// them with its own message.
func UploadPDF(maxSize int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
			return c.Next()
		}
		form, err := c.MultipartForm()
		if err != nil {
			return services.BadRequest(err.Error())
		}

		count := 0
		for field, files := range form.File {
			if field != uploadField && len(files) > 0 {
				return services.BadRequest("Unexpected field")
			}
			count += len(files)
		}
		if count == 0 {
			return c.Next()
		}
		if count > 1 {
			return services.BadRequest("Too many files")
		}

		file := form.File[uploadField][0]
		if file.Size > maxSize {
			return services.BadRequest(fmt.Sprintf("File too large. Maximum size is %dMB", maxSize/megabyte))
		}
		if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" || file.Header.Get(fiber.HeaderContentType) != pdfMIME {
			return services.BadRequest("Only PDF files are allowed")
		}

		f, err := file.Open()
		if err != nil {
			return err
		}
		detected, err := mimetype.DetectReader(f)
		f.Close()
		if err != nil {
			return err
		}
		if !detected.Is(pdfMIME) {
			return services.BadRequest("Only PDF files are allowed")
		}

		c.Locals(uploadFileKey, file)
		return c.Next()
	}
}

// UploadedFile returns the PDF accepted by UploadPDF, or nil.
func UploadedFile(c *fiber.Ctx) *multipart.FileHeader {
	file, _ := c.Locals(uploadFileKey).(*multipart.FileHeader)
	return file
}
