package handlers

import (
	"io"
	"net/http"

	"dispatchapi/internal/domain"
	"dispatchapi/internal/http/middleware"
	"dispatchapi/internal/services"

	"github.com/gin-gonic/gin"
)

// maxAttachmentSize bounds a single uploaded file.
const maxAttachmentSize = 20 << 20

func attachmentService(c *gin.Context) services.AttachmentService {
	return services.AttachmentService{RequestID: middleware.GetRequestID(c)}
}

// POST /v1/attachments (multipart form, field "file")
func CreateAttachment(c *gin.Context) {
	if _, ok := requireEnterprise(c); !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAttachmentSize+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "multipart field 'file' is required", Err: err})
		return
	}
	if fh.Size > maxAttachmentSize {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "file is too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "could not read upload", Err: err})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "file", Msg: "could not read upload", Err: err})
		return
	}

	out, err := attachmentService(c).Create(c.Request.Context(), services.UploadedFile{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GET /v1/attachments/:id
func GetAttachment(c *gin.Context) {
	if _, ok := requireEnterprise(c); !ok {
		return
	}
	out, err := attachmentService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
