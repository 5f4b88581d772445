package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bucketchat/api/internal/core/domain"
	"github.com/bucketchat/api/internal/core/ports"
	"github.com/bucketchat/api/internal/pkg/metrics"
)

const msgMissingMessage = "Missing message"

// MessageHandler serves the global message feed.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Post handles POST /message.
//
// @Summary      Post a message to the feed
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postMessageRequest  true  "Message body"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /message [post]
func (h *MessageHandler) Post(c echo.Context) error {
	sender, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		metrics.MessagesRejectedTotal.WithLabelValues("missing").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingMessage)
	}
	if err := c.Validate(&req); err != nil {
		metrics.MessagesRejectedTotal.WithLabelValues("missing").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingMessage)
	}

	msg, err := h.service.Post(c.Request().Context(), sender, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.MessagesRejectedTotal.WithLabelValues("missing").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, msgMissingMessage)
		case errors.Is(err, domain.ErrOffensiveContent):
			metrics.MessagesRejectedTotal.WithLabelValues("offensive").Inc()
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid message.")
		case errors.Is(err, domain.ErrMissingIdentity):
			return echo.NewHTTPError(http.StatusForbidden, "Token missing user identity.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to send message.").SetInternal(err)
	}

	metrics.MessagesPostedTotal.Inc()
	return c.JSON(http.StatusOK, toMessageResponse(msg))
}

// List handles GET /message. Stored messages are returned as-is, without
// re-running the content filter.
//
// @Summary      List the feed
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /message [get]
func (h *MessageHandler) List(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	msgs, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to retrieve messages.").SetInternal(err)
	}

	return c.JSON(http.StatusOK, toMessageListResponse(msgs))
}
