// Package api exposes the capability predicates over HTTP. Request bodies
// are IR expression documents; responses carry the verdict and, when the
// pattern is rejected, every violation found.
package api

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/mbaret/npubridge/internal/bridge"
	"github.com/mbaret/npubridge/internal/ir"
	"github.com/mbaret/npubridge/internal/logger"
)

type Server struct {
	checker *bridge.Checker
	log     logger.Logger
}

func NewServer(checker *bridge.Checker, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{checker: checker, log: log}
}

// Register installs the capability-query routes.
func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/support/convolution", s.handleSupport(bridge.KindConvolution))
	e.POST("/v1/support/concatenate", s.handleSupport(bridge.KindConcatenation))
	e.POST("/v1/support/split", s.handleSupport(bridge.KindSplit))
	e.POST("/v1/support", s.handleSupport(""))
	e.GET("/v1/hardware", s.handleHardware)
}

func (s *Server) handleSupport(kind bridge.PatternKind) echo.HandlerFunc {
	return func(c *echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return writeBadRequest(c, "reading request body: "+err.Error())
		}
		expr, err := ir.UnmarshalExpr(body)
		if err != nil {
			return writeBadRequest(c, "decoding expression: "+err.Error())
		}

		want := kind
		if want == "" {
			want = bridge.DetectKind(expr)
		}
		var (
			supported  bool
			violations bridge.Violations
		)
		switch want {
		case bridge.KindConvolution:
			supported, violations = s.checker.ConvolutionSupported(expr)
		case bridge.KindConcatenation:
			supported, violations = s.checker.ConcatenateSupported(expr)
		case bridge.KindSplit:
			supported, violations = s.checker.SplitSupported(expr)
		default:
			return writeBadRequest(c, "expression does not match any supported pattern")
		}

		resp := SupportResponse{
			ID:         "query_" + uuid.NewString(),
			Pattern:    string(want),
			Supported:  supported,
			Violations: violations.Reasons(),
		}
		s.log.Debug("capability query", "id", resp.ID, "pattern", resp.Pattern, "supported", resp.Supported)
		return c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handleHardware(c *echo.Context) error {
	return c.JSON(http.StatusOK, HardwareResponse{Available: s.checker.HardwareAvailable()})
}

func writeBadRequest(c *echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]any{
		"error": ErrorBody{Message: msg, Type: "invalid_request_error"},
	})
}
