package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.SuccessResponse(profile, ""))
}

// UpdateProfile takes a multipart form with name and an optional profilePhoto.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	var photo *service.Upload
	if fh := formFile(c, "profilePhoto"); fh != nil {
		if err := h.validator.Var(fh.Header.Get("Content-Type"), "supported_image"); err != nil {
			return fail(c, errUnsupportedImage)
		}
		upload, f, err := openUpload(fh)
		if err != nil {
			return fail(c, err)
		}
		defer f.Close()
		photo = upload
	}

	user, err := h.userService.UpdateProfile(c.UserContext(), currentUserID(c), req, photo)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}
