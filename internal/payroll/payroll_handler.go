package payroll

import (
	"net/http"
	"strconv"

	"github.com/elec-connect/smart-attendance-system-sub001/internal/middleware"
	payrollerrors "github.com/elec-connect/smart-attendance-system-sub001/internal/payroll/errors"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/apperror"
	"github.com/elec-connect/smart-attendance-system-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func paymentID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, payrollerrors.ErrInvalidPaymentID
	}
	return id, nil
}

func (h *Handler) ListSalaryConfigs(c *gin.Context) {
	resp, err := h.service.ListSalaryConfigs(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetSalaryConfig(c *gin.Context) {
	resp, err := h.service.GetSalaryConfig(c.Request.Context(), middleware.GetScope(c), c.Param("employeeId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateSalaryConfig(c *gin.Context) {
	var req SalaryConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateSalaryConfig(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, "Salary configuration saved", resp)
}

func (h *Handler) UpdateSalaryConfig(c *gin.Context) {
	var req SalaryConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateSalaryConfig(c.Request.Context(), c.Param("employeeId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Salary configuration updated", resp)
}

func (h *Handler) CalculateSalary(c *gin.Context) {
	var req CalculateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	h.logger.Info("http calculate salary",
		zap.String("employee", string(req.EmployeeID)),
		zap.String("month_year", req.MonthYear),
	)

	resp, err := h.service.CalculateSalary(c.Request.Context(), string(req.EmployeeID), req.MonthYear)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Salary calculated", resp)
}

func (h *Handler) CalculateMonth(c *gin.Context) {
	var req CalculateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CalculateMonth(c.Request.Context(), req.MonthYear)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Month calculated", resp)
}

func (h *Handler) ListPayMonths(c *gin.Context) {
	resp, err := h.service.ListPayMonths(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertPayMonth(c *gin.Context) {
	var req PayMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpsertPayMonth(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPayments(c *gin.Context) {
	var filter PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ListPayments(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := paymentID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetPayment(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaymentPaid(c *gin.Context) {
	id, err := paymentID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.MarkPaymentPaid(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, "Payment marked as paid", resp)
}

func (h *Handler) DownloadPayslip(c *gin.Context) {
	id, err := paymentID(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	slip, err := h.service.RenderPayslip(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+slip.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", slip.Content)
}
