// Package amqp publica los eventos de aprobación de facturas en RabbitMQ.
package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/ephone-api/internal/application/billing"
)

// InvoiceApprovedType tipo del mensaje en la propiedad Type de AMQP.
const InvoiceApprovedType = "invoice.approved"

// InvoiceApprovedMessage cuerpo JSON del evento.
type InvoiceApprovedMessage struct {
	MessageID  string          `json:"message_id"`
	InvoiceID  int64           `json:"invoice_id"`
	SectorID   int64           `json:"sector_id"`
	SectorName string          `json:"sector_name"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Total      decimal.Decimal `json:"total"`
	ApprovedBy int64           `json:"approved_by,omitempty"`
	ApprovedAt time.Time       `json:"approved_at"`
}

// NewInvoiceApprovedMessage construye el mensaje con un message_id nuevo.
func NewInvoiceApprovedMessage(ev appbilling.InvoiceApprovedEvent) *InvoiceApprovedMessage {
	return &InvoiceApprovedMessage{
		MessageID:  uuid.NewString(),
		InvoiceID:  ev.InvoiceID,
		SectorID:   ev.SectorID,
		SectorName: ev.SectorName,
		Month:      ev.Month,
		Year:       ev.Year,
		Total:      ev.Total,
		ApprovedBy: ev.ApprovedBy,
		ApprovedAt: ev.ApprovedAt,
	}
}

func (m *InvoiceApprovedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InvoiceApprovedMessageFromJSON(data []byte) (*InvoiceApprovedMessage, error) {
	var m InvoiceApprovedMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
