package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sharebox/internal/service"
)

// uploadField is the multipart form field the client page posts files under.
const uploadField = "myFile"

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}

// UploadFile stores a multipart upload under its original file name.
// A name that already exists is overwritten silently; when the field carries
// several files only the first one is stored.
//
// @Summary Upload a file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param myFile formData file true "file to store"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /upload [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "could not parse upload form")
		}

		files := form.File[uploadField]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "no file uploaded")
		}
		fh := files[0]

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "could not read uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}

		stored, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrInvalidName):
				return writeError(c, fiber.StatusBadRequest, "invalid file name")
			case errors.Is(err, service.ErrTooLarge):
				return writeError(c, fiber.StatusInternalServerError, "file exceeds the maximum allowed size")
			default:
				return writeError(c, fiber.StatusInternalServerError, "could not save file")
			}
		}

		return c.JSON(uploadResponse{
			Success:  true,
			Message:  "File uploaded successfully",
			FileName: stored.Name,
		})
	}
}
