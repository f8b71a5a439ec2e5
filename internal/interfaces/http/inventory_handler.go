package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/application/inventory"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

const (
	dayLayout             = "2006-01-02"
	defaultMovementsLimit = 50
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Entrada (IN) o salida (OUT) sobre un producto. El actor se toma del token.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, direction, quantity, note"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	actorID := GetActorID(c)
	if actorID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.RegisterMovementRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, fieldError(err, "quantity", domain.ErrInvalidQuantity))
	}
	res, err := h.ledger.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Direction: entity.Direction(in.Direction),
		Quantity:  in.Quantity,
		ActorID:   actorID,
		ActorKind: actorKind(GetRole(c)),
		Note:      in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Movement:    inventory.ToMovementResponse(res.Movement),
		NewQuantity: res.NewQuantity,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Más recientes primero. Fechas YYYY-MM-DD inclusivas (UTC).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        actor_id    query  string  false  "Actor"
// @Param        direction   query  string  false  "IN | OUT"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	filter, err := toMovementFilter(in)
	if err != nil {
		return writeError(c, err)
	}
	return h.respondMovements(c, filter)
}

// ProductMovements godoc
// @Summary      Historial de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return writeError(c, err)
	}
	in.ProductID = id
	filter, err := toMovementFilter(in)
	if err != nil {
		return writeError(c, err)
	}
	if _, err := h.ledger.CurrentQuantity(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return h.respondMovements(c, filter)
}

// GetMovement godoc
// @Summary      Movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	m, err := h.ledger.GetMovement(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(m))
}

func (h *InventoryHandler) respondMovements(c *fiber.Ctx, filter repository.MovementFilter) error {
	movs, err := h.ledger.ListMovements(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, inventory.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Quantity godoc
// @Summary      Cantidad actual de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.QuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/quantity [get]
func (h *InventoryHandler) Quantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	qty, err := h.ledger.CurrentQuantity(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.QuantityResponse{ProductID: id, Quantity: qty})
}

// Reconcile godoc
// @Summary      Conciliar un producto contra su historial
// @Description  Solo diagnostica; no corrige la cantidad almacenada.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconciliationReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "id")
	}
	report, err := h.ledger.Reconcile(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToReportDTO(report))
}

// ReconcileAll godoc
// @Summary      Conciliar todo el catálogo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconcileAllResponse
// @Router       /api/inventory/reconcile [get]
func (h *InventoryHandler) ReconcileAll(c *fiber.Ctx) error {
	summary, err := h.ledger.ReconcileAll(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ReconcileAllResponse{
		ProductsChecked: summary.ProductsChecked,
		Mismatches:      make([]dto.QuantityMismatchDTO, 0, len(summary.Mismatches)),
	}
	for _, m := range summary.Mismatches {
		out.Mismatches = append(out.Mismatches, *inventory.ToMismatchDTO(m))
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su umbral con la cantidad sugerida de pedido, por déficit.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

func toMovementFilter(in dto.MovementListRequest) (repository.MovementFilter, error) {
	f := repository.MovementFilter{
		ProductID: in.ProductID,
		ActorID:   in.ActorID,
		Direction: entity.Direction(in.Direction),
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if f.Limit <= 0 {
		f.Limit = defaultMovementsLimit
	}
	if in.From != "" {
		from, err := time.Parse(dayLayout, in.From)
		if err != nil {
			return f, &validationError{fields: map[string]string{"from": "datetime"}}
		}
		f.From = &from
	}
	if in.To != "" {
		to, err := time.Parse(dayLayout, in.To)
		if err != nil {
			return f, &validationError{fields: map[string]string{"to": "datetime"}}
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.To = &end
	}
	return f, nil
}

func actorKind(role string) string {
	if role == entity.RoleAdmin {
		return entity.ActorAdmin
	}
	return entity.ActorStaff
}
