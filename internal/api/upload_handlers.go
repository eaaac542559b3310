package api

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
)

const maxUploadSize = 5 * 1024 * 1024 // 5MB

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UploadImage stores a multipart image under uploadDir with a generated
// filename and returns its public URL.
func UploadImage(app App, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "No file provided")
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			HandleError(c, app.Logger(),
				internal.ErrInvalidState("file type not allowed"), 400,
				"Only .jpg, .jpeg, .png, .gif, .webp files can be uploaded")
			return
		}
		if file.Size > maxUploadSize {
			HandleError(c, app.Logger(),
				internal.ErrInvalidState(fmt.Sprintf("file exceeds %dMB limit", maxUploadSize/(1024*1024))),
				400, "File too large")
			return
		}

		filename := uuid.NewString() + ext
		dst := filepath.Join(uploadDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save file")
			return
		}

		HandleCreated(c, app.Logger(), gin.H{
			"filename": filename,
			"url":      "/uploads/" + filename,
			"size":     file.Size,
		})
	}
}
