package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nvandessel/toonify/internal/convert"
	"github.com/nvandessel/toonify/internal/tokens"
	"github.com/nvandessel/toonify/internal/toon"
)

type ToonRouter struct {
	e *echo.Echo
}

func NewToonRouter(e *echo.Echo) *ToonRouter {
	return &ToonRouter{e: e}
}

func (r *ToonRouter) Bind() {
	r.e.GET("/health", r.healthHandler)

	v1 := r.e.Group("/v1")
	v1.POST("/encode", r.encodeHandler)
	v1.POST("/decode", r.decodeHandler)
	v1.POST("/validate", r.validateHandler)
	v1.POST("/tokens", r.tokensHandler)
}

type textRequest struct {
	Input string `json:"input"`
}

type encodeRequest struct {
	Input   string `json:"input"`
	Compact bool   `json:"compact"`
}

type encodeResponse struct {
	Output string            `json:"output"`
	Tokens tokens.Comparison `json:"tokens"`
}

type decodeResponse struct {
	Output any `json:"output"`
}

type tokensResponse struct {
	Tokens int `json:"tokens"`
}

func (r *ToonRouter) healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *ToonRouter) encodeHandler(c echo.Context) error {
	var req encodeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	out, err := convert.ToTOON(req.Input, req.Compact)
	if err != nil {
		return &InputError{Err: err}
	}
	return c.JSON(http.StatusOK, encodeResponse{
		Output: out,
		Tokens: tokens.Compare(req.Input, out),
	})
}

func (r *ToonRouter) decodeHandler(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	obj, err := toon.Decode(req.Input)
	if err != nil {
		return &InputError{Err: err}
	}
	return c.JSON(http.StatusOK, decodeResponse{Output: obj})
}

func (r *ToonRouter) validateHandler(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toon.Validate(req.Input))
}

func (r *ToonRouter) tokensHandler(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokensResponse{Tokens: tokens.EstimateTokens(req.Input)})
}
