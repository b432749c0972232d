package http

import (
	"github.com/labstack/echo/v4"

	"github.com/waichung/safetyhub"
)

// PutOptionListRequest replaces an option list wholesale.
type PutOptionListRequest struct {
	Items []string `json:"items" validate:"required,min=1"`
}

// OptionListResponse carries one option list.
type OptionListResponse struct {
	Kind  safetyhub.ListKind `json:"kind"`
	Items []string           `json:"items"`
}

func (s *Server) handleGetOptionList(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	kind := safetyhub.ListKind(c.Param("kind"))
	items, err := s.settingsService.GetList(ctx, kind)
	if err != nil {
		return err
	}
	return RespondOK(c, OptionListResponse{Kind: kind, Items: items})
}

func (s *Server) handlePutOptionList(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	kind := safetyhub.ListKind(c.Param("kind"))

	var req PutOptionListRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := s.settingsService.PutList(ctx, kind, req.Items); err != nil {
		return err
	}

	items, err := s.settingsService.GetList(ctx, kind)
	if err != nil {
		return err
	}
	return RespondOK(c, OptionListResponse{Kind: kind, Items: items})
}
