package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/course-platform/internal/core/ports"
)

// PaymentDispatcher is the interface the handler uses to enqueue payment events.
type PaymentDispatcher interface {
	Enqueue(event ports.PaymentEventInput)
	EnqueueBatch(events []ports.PaymentEventInput)
}

// PaymentHandler ingests payment-gateway notifications. Delivery is
// at-least-once: the pipeline behind the queue dedups and the ledger is
// idempotent, so the handler only validates and acknowledges.
type PaymentHandler struct {
	dispatcher PaymentDispatcher
}

func NewPaymentHandler(dispatcher PaymentDispatcher) *PaymentHandler {
	return &PaymentHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/payments/events.
//
// @Summary      Ingest a single payment event
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentEventRequest  true  "Payment event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/payments/events [post]
func (h *PaymentHandler) Receive(c echo.Context) error {
	var req paymentEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toPaymentInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/payments/events/batch.
//
// @Summary      Ingest a batch of payment events
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []paymentEventRequest  true  "Array of payment events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/payments/events/batch [post]
func (h *PaymentHandler) ReceiveBatch(c echo.Context) error {
	var reqs []paymentEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.PaymentEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toPaymentInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}

// toPaymentInput maps the HTTP request to the pipeline DTO.
func toPaymentInput(r paymentEventRequest) ports.PaymentEventInput {
	return ports.PaymentEventInput{
		SubjectID: r.SubjectID,
		CourseID:  r.CourseID,
		Status:    r.Status,
		Reference: r.Reference,
		Provider:  r.Provider,
		Timestamp: r.Timestamp,
	}
}
