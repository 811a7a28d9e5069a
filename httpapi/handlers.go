package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avelar/contentforge"
	"github.com/avelar/contentforge/workflow"
)

// createRequest is the body of both create endpoints.
type createRequest struct {
	Prompt       string `json:"prompt"`
	SaveMarkdown *bool  `json:"save_markdown"`
}

func (r createRequest) saveMarkdown() bool {
	return r.SaveMarkdown == nil || *r.SaveMarkdown
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Phase   string `json:"stage,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Content Creation API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: "Content creation API is running",
	})
}

func (s *Server) handleCreate(c echo.Context) error {
	req, err := s.bindRequest(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	log := s.log.With("topic", req.Prompt)

	result, err := s.runner.Run(ctx, req.Prompt)
	if err != nil {
		log.Error("workflow failed", "error", err)
		return c.JSON(statusFor(err), failureBody(err))
	}
	log.Info("workflow completed", "workflow_id", result.Metadata.WorkflowID,
		"execution_time_seconds", result.Metadata.ExecutionTime)

	s.persist(c, req, result)
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateStream(c echo.Context) error {
	req, err := s.bindRequest(c)
	if err != nil {
		return err
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	for event := range s.runner.RunStream(ctx, req.Prompt) {
		payload, err := json.Marshal(event)
		if err != nil {
			s.log.Error("failed to serialize event", "error", err)
			continue
		}
		if _, err := fmt.Fprintf(resp, "data: %s\n\n", payload); err != nil {
			// Client went away; the run's context cancellation
			// handles the rest.
			return nil
		}
		resp.Flush()

		if event.Type == workflow.EventComplete && event.Result != nil {
			s.persist(c, req, event.Result)
		}
	}
	return nil
}

func (s *Server) bindRequest(c echo.Context) (createRequest, error) {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return req, echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}
	return req, nil
}

// persist saves the result as markdown when requested. Persistence
// failures never fail the request.
func (s *Server) persist(c echo.Context, req createRequest, result *workflow.Result) {
	if s.store == nil || !req.saveMarkdown() {
		return
	}
	path, err := s.store.SaveResult(c.Request().Context(), result)
	if err != nil {
		s.log.Warn("failed to save markdown", "workflow_id", result.Metadata.WorkflowID, "error", err)
		return
	}
	s.log.Info("result saved", "workflow_id", result.Metadata.WorkflowID, "path", path)
}

// statusFor maps a workflow failure to an HTTP status: upstream
// trouble surfaces as a gateway error, everything else as internal.
func statusFor(err error) int {
	switch contentforge.KindOf(err) {
	case contentforge.KindTimeout:
		return http.StatusGatewayTimeout
	case contentforge.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failureBody(err error) errorBody {
	detail := errorDetail{Message: err.Error()}
	if kind := contentforge.KindOf(err); kind != "" {
		detail.Kind = string(kind)
	}
	var failure *workflow.Failure
	if errors.As(err, &failure) {
		detail.Phase = string(failure.FailedPhase)
	}
	return errorBody{Error: detail}
}
