package handler

import (
	"context"
	"net/http"
	"strings"

	"cloudnotes/cmd/internal/contract"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ShareService interface {
	CreatePublicLink(ctx context.Context, ownerID, noteID string, req *contract.LinkShareRequest) (*contract.LinkShareResponse, apierror.ErrorResponse)
	ResolvePublicLink(ctx context.Context, token string) (*contract.PublicNoteResponse, apierror.ErrorResponse)
	ResolveLink(ctx context.Context, token string) (*contract.SharedNoteResponse, apierror.ErrorResponse)
	CreateEmailShare(ctx context.Context, ownerID, noteID string, req *contract.EmailShareRequest) apierror.ErrorResponse
}

type DefaultShareRoute struct {
	ShareService ShareService
}

func NewShareDefault(shareService ShareService) *DefaultShareRoute {
	return &DefaultShareRoute{ShareService: shareService}
}

func (s *DefaultShareRoute) CreateLink(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	noteID := strings.TrimSpace(c.Param("noteId"))
	if noteID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("noteId"))
	}

	var req contract.LinkShareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := s.ShareService.CreatePublicLink(c.Request().Context(), identity.Sub, noteID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

// ResolveLink is the authenticated lookup. Any signed-in caller with the
// token gets the full note, whoever issued it.
func (s *DefaultShareRoute) ResolveLink(c echo.Context) error {
	if _, cerr := utils.GetIdentityFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := s.ShareService.ResolveLink(c.Request().Context(), c.Param("token"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *DefaultShareRoute) ResolvePublic(c echo.Context) error {
	resp, apierr := s.ShareService.ResolvePublicLink(c.Request().Context(), c.Param("token"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *DefaultShareRoute) CreateEmailShare(c echo.Context) error {
	identity, cerr := utils.GetIdentityFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	noteID := strings.TrimSpace(c.Param("noteId"))
	if noteID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError("noteId"))
	}

	var req contract.EmailShareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := s.ShareService.CreateEmailShare(c.Request().Context(), identity.Sub, noteID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, &contract.OkResponse{Ok: true})
}
