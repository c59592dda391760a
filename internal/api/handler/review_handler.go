package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/ports"
)

// ReviewHandler serves /reviews.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List returns approved reviews, or every review to admins.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        X-Session-Token  header    string  false  "Session token"
// @Success      200              {object}  reviewListResponse
// @Router       /reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.service.List(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewListResponse{Reviews: nonNil(reviews)})
}

// Create submits a review for moderation.
//
// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string               true  "Session token"
// @Param        body             body      createReviewRequest  true  "Review"
// @Success      200              {object}  reviewCreatedResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	r, err := h.service.Create(c.Request().Context(), caller(c), ports.CreateReviewInput{
		Author:  req.Author,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviewCreatedResponse{Success: true, ReviewID: r.ID})
}

// Moderate approves or hides a review.
//
// @Summary      Moderate a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string                 true  "Session token"
// @Param        body             body      moderateReviewRequest  true  "Decision"
// @Success      200              {object}  successResponse
// @Failure      403              {object}  map[string]string
// @Router       /reviews [put]
func (h *ReviewHandler) Moderate(c echo.Context) error {
	var req moderateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Moderate(c.Request().Context(), caller(c), req.ID, *req.Approved); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete withdraws a review from the public list.
//
// @Summary      Withdraw a review
// @Tags         reviews
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token"
// @Param        id               query     int     true  "Review id"
// @Success      200              {object}  successResponse
// @Failure      403              {object}  map[string]string
// @Router       /reviews [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := requireQueryID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Withdraw(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
