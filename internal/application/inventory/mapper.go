package inventory

import (
	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// ToMovementResponse convierte un movimiento del ledger a su DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		ProductID:         m.ProductID,
		Direction:         string(m.Direction),
		Quantity:          m.Quantity,
		ActorID:           m.ActorID,
		ActorKind:         m.ActorKind,
		Note:              m.Note,
		PreviousQuantity:  m.PreviousQuantity,
		ResultingQuantity: m.ResultingQuantity,
		CreatedAt:         m.CreatedAt,
	}
}

// ToMismatchDTO convierte una discrepancia de conciliación a su DTO.
func ToMismatchDTO(m *entity.QuantityMismatch) *dto.QuantityMismatchDTO {
	if m == nil {
		return nil
	}
	return &dto.QuantityMismatchDTO{
		ProductID:        m.ProductID,
		SKU:              m.SKU,
		StoredQuantity:   m.StoredQuantity,
		InitialQuantity:  m.InitialQuantity,
		MovementSum:      m.MovementSum,
		ExpectedQuantity: m.ExpectedQuantity,
		Difference:       m.Difference,
	}
}

// ToReportDTO convierte un reporte de conciliación a su DTO.
func ToReportDTO(r *entity.ReconciliationReport) dto.ReconciliationReportDTO {
	return dto.ReconciliationReportDTO{
		ProductID:        r.ProductID,
		StoredQuantity:   r.StoredQuantity,
		ExpectedQuantity: r.ExpectedQuantity,
		MovementCount:    r.MovementCount,
		Consistent:       r.Mismatch == nil,
		Mismatch:         ToMismatchDTO(r.Mismatch),
		CheckedAt:        r.CheckedAt,
	}
}
