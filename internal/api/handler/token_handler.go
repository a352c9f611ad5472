package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/api/metrics"
	"github.com/fitpass/gym-system/internal/core/service"
)

// TokenHandler serves dynamic member tokens and checkpoint signage codes.
type TokenHandler struct {
	service *service.TokenService
}

func NewTokenHandler(svc *service.TokenService) *TokenHandler {
	return &TokenHandler{service: svc}
}

type memberTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type checkpointCodeResponse struct {
	Code string `json:"code"`
}

// MemberToken issues a fresh short-lived token for the caller. Staff roles
// may pass member_id to issue for another member.
//
// @Summary      Issue a dynamic member token
// @Tags         tokens
// @Produce      json
// @Security     BearerAuth
// @Param        member_id  query     string  false  "Member ID (staff only; defaults to caller)"
// @Success      200        {object}  memberTokenResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/tokens/member [get]
func (h *TokenHandler) MemberToken(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	tkn, expiresAt, err := h.service.IssueMemberToken(c.Request().Context(), c.QueryParam("member_id"), caller)
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusOK, memberTokenResponse{Token: tkn, ExpiresAt: expiresAt})
}

// CheckpointCode returns the current rotating code for a checkpoint site,
// for staff refreshing printed or displayed signage.
//
// @Summary      Get the current checkpoint signage code
// @Tags         tokens
// @Produce      json
// @Security     BearerAuth
// @Param        site  path      string  true  "Checkpoint site ID"
// @Success      200   {object}  checkpointCodeResponse
// @Failure      403   {object}  map[string]string
// @Router       /v1/tokens/checkpoint/{site} [get]
func (h *TokenHandler) CheckpointCode(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	code, err := h.service.CheckpointCode(c.Param("site"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkpointCodeResponse{Code: code})
}
