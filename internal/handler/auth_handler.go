package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/models"
	"github.com/sefazor/learnhub-backend/internal/service"
	"github.com/sefazor/learnhub-backend/pkg/utils"
)

const tokenCookie = "token"

var errCaptchaFailed = errors.New("captcha verification failed")

// CaptchaVerifier guards the public auth forms. *captcha.Turnstile implements it.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

type AuthHandler struct {
	authService *service.AuthService
	captcha     CaptchaVerifier
	validator   *utils.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, captcha CaptchaVerifier, validator *utils.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		captcha:     captcha,
		validator:   validator,
		cfg:         cfg,
	}
}

func (h *AuthHandler) checkCaptcha(c *fiber.Ctx, token string) error {
	ok, err := h.captcha.Verify(c.UserContext(), token, c.IP())
	if err != nil {
		return err
	}
	if !ok {
		return errCaptchaFailed
	}
	return nil
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}
	if err := h.checkCaptcha(c, req.CaptchaToken); err != nil {
		return fail(c, err)
	}

	user, err := h.authService.Register(req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "Account created successfully"))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	auth, err := h.authService.Login(req)
	if err != nil {
		return fail(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    auth.Token,
		Expires:  time.Now().Add(h.cfg.JWTTTL),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(models.SuccessResponse(auth, "Welcome back "+auth.User.Name))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    "",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(models.SuccessResponse(nil, "Logged out successfully"))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ChangePassword(currentUserID(c), req); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Password changed successfully"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}
	if err := h.checkCaptcha(c, req.CaptchaToken); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "If the email is registered, a reset link has been sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := decode(c, h.validator, &req); err != nil {
		return fail(c, err)
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Password reset successful"))
}
