package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"quickchat/internal/services"
	"quickchat/internal/transport/httpdto"
	quickchat_errors "quickchat/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler handles profile reads and updates.
type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// UpdateProfile handles PATCH /update-profile. The body is multipart:
// only fields present in the form are changed, so the handler has to
// distinguish "absent" from "present but empty" before the service
// sees the input.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u, ok := services.CurrentUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	var in services.UpdateProfileInput
	if vals, present := form.Value["fullName"]; present && len(vals) > 0 {
		in.FullName = &vals[0]
	}
	if vals, present := form.Value["bio"]; present && len(vals) > 0 {
		in.Bio = &vals[0]
	}

	if files := form.File["profilePic"]; len(files) > 0 {
		avatar, err := readAvatarFile(files[0])
		if err != nil {
			writeError(c, err)
			return
		}
		in.Avatar = avatar
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), u.ID, in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UpdateProfileResponse{Success: true, User: httpdto.FromUser(updated)})
}

func readAvatarFile(fh *multipart.FileHeader) (*services.AvatarUpload, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, quickchat_errors.ErrInvalidInput
	}
	defer file.Close()

	// Read one byte past the cap so oversize files are rejected
	// without buffering them whole.
	data, err := io.ReadAll(io.LimitReader(file, services.MaxImageBytes+1))
	if err != nil {
		return nil, quickchat_errors.ErrInvalidInput
	}
	if len(data) > services.MaxImageBytes {
		return nil, quickchat_errors.ErrTooLarge
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &services.AvatarUpload{Data: data, ContentType: contentType}, nil
}
