package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/ports"
)

// FeedbackHandler serves /feedback.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// List returns every contact message.
//
// @Summary      List feedback
// @Tags         feedback
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token (admin)"
// @Success      200              {object}  feedbackListResponse
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /feedback [get]
func (h *FeedbackHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbackListResponse{Feedback: nonNil(items)})
}

// Submit stores a contact form message.
//
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      submitFeedbackRequest  true  "Message"
// @Success      200   {object}  feedbackCreatedResponse
// @Failure      400   {object}  map[string]string
// @Router       /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req submitFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	f, err := h.service.Submit(c.Request().Context(), caller(c), ports.SubmitFeedbackInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbackCreatedResponse{Success: true, FeedbackID: f.ID})
}

// MarkRead flags a message as read or unread.
//
// @Summary      Mark feedback read
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string               true  "Session token (admin)"
// @Param        body             body      markFeedbackRequest  true  "Flag"
// @Success      200              {object}  successResponse
// @Failure      403              {object}  map[string]string
// @Router       /feedback [put]
func (h *FeedbackHandler) MarkRead(c echo.Context) error {
	var req markFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), caller(c), req.ID, *req.IsRead); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
