package billing

import (
	"github.com/jhoicas/ephone-api/internal/application/dto"
	domainbilling "github.com/jhoicas/ephone-api/internal/domain/billing"
	"github.com/jhoicas/ephone-api/internal/domain/entity"
)

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &dto.InvoiceResponse{
		ID:         inv.ID,
		SectorID:   inv.SectorID,
		Month:      inv.Period.Month,
		Year:       inv.Period.Year,
		Total:      inv.Total,
		Status:     inv.Status,
		ApprovedBy: inv.ApprovedBy,
		ApprovedAt: inv.ApprovedAt,
	}
}

func toLineItemResponses(items []domainbilling.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemResponse{
			Type:        string(it.Type),
			Number:      it.Number,
			MonthlyCost: it.MonthlyCost,
		})
	}
	return out
}
