package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nomina-api/internal/application/dto"
	"github.com/jhoicas/Nomina-api/internal/application/payroll"
)

// PayrollHandler pagos, descuentos, adelantos y comprobantes.
type PayrollHandler struct {
	payments   *payroll.PaymentUseCase
	deductions *payroll.DeductionUseCase
	receipts   *payroll.ReceiptUseCase
}

// NewPayrollHandler construye el handler.
func NewPayrollHandler(payments *payroll.PaymentUseCase, deductions *payroll.DeductionUseCase, receipts *payroll.ReceiptUseCase) *PayrollHandler {
	return &PayrollHandler{payments: payments, deductions: deductions, receipts: receipts}
}

// RegisterPayment godoc
// @Summary      Registrar pago de nómina
// @Description  Descuenta los descuentos y adelantos pendientes hasta el fin del período.
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPaymentRequest  true  "pago"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PayrollHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payments.RegisterPayment(c.UserContext(), actorID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments GET /api/payments?employee_id=
func (h *PayrollHandler) ListPayments(c *fiber.Ctx) error {
	var in dto.PayrollListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	list, err := h.payments.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Receipt GET /api/payments/:id/receipt (application/pdf)
func (h *PayrollHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// RegisterDiscount POST /api/discounts
func (h *PayrollHandler) RegisterDiscount(c *fiber.Ctx) error {
	var in dto.RegisterDeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.deductions.RegisterDiscount(c.UserContext(), actorID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDiscounts GET /api/discounts?employee_id=
func (h *PayrollHandler) ListDiscounts(c *fiber.Ctx) error {
	var in dto.PayrollListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	list, err := h.deductions.ListDiscounts(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// RegisterAdvance POST /api/advances
func (h *PayrollHandler) RegisterAdvance(c *fiber.Ctx) error {
	var in dto.RegisterDeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.deductions.RegisterAdvance(c.UserContext(), actorID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAdvances GET /api/advances?employee_id=
func (h *PayrollHandler) ListAdvances(c *fiber.Ctx) error {
	var in dto.PayrollListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	list, err := h.deductions.ListAdvances(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
