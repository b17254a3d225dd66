// internal/infra/httpapi/trigger_handler.go
package httpapi

import (
	"strings"

	"attendance_notifier/internal/app"
	"attendance_notifier/internal/infra/firestoredb"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TriggerHandler receives Firestore write deliveries over HTTP and hands them
// to the attendance write handler.
type TriggerHandler struct {
	handler app.WriteHandler
	logger  *logrus.Entry
}

func NewTriggerHandler(h app.WriteHandler, logger *logrus.Entry) *TriggerHandler {
	return &TriggerHandler{handler: h, logger: logger}
}

func (h *TriggerHandler) Register(a *fiber.App) {
	a.Get("/checkhealth", h.Health)
	a.Post("/", h.Receive)
	a.Post("/events/attendance", h.Receive)
}

func (h *TriggerHandler) Health(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Attendance notifier is healthy")
}

// Receive decodes one delivery and runs the handler to completion. Binary-mode
// CloudEvents (application/protobuf) and JSON bodies are both accepted.
// Delivery failures of the notification itself never change the response.
func (h *TriggerHandler) Receive(c fiber.Ctx) error {
	var (
		evt *firestoredb.WriteEvent
		err error
	)
	if strings.Contains(c.Get(fiber.HeaderContentType), "protobuf") {
		evt, err = firestoredb.DecodeWriteEventProto(c.Body(), c.Get("Ce-Subject"))
	} else {
		evt, err = firestoredb.DecodeWriteEvent(c.Body(), c.Get("Ce-Subject"))
	}
	if err != nil {
		h.logger.WithError(err).Warn("Rejected trigger delivery")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid event",
			"detail": err.Error(),
		})
	}

	eventID := firstNonEmpty(c.Get("Ce-Id"), c.Get("Function-Execution-Id"), evt.EventID)
	if eventID == "" {
		eventID = uuid.NewString()
	}

	h.logger.WithFields(logrus.Fields{
		"event_id":       eventID,
		"updated_fields": evt.UpdatedFields,
	}).Debug("Trigger delivery decoded")

	ctx := app.ContextWithEventID(c.Context(), eventID)
	h.handler.OnWrite(ctx, evt.Params, evt.Before, evt.After)

	return c.SendStatus(fiber.StatusNoContent)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
