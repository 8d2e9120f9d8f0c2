package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mpcs-reservation/internal/authn"
	"mpcs-reservation/internal/calendar"
	"mpcs-reservation/internal/engine"
	"mpcs-reservation/internal/notify"
	"mpcs-reservation/internal/reporter"
	"mpcs-reservation/internal/staffdir"
)

// Handlers wires the engine, staff directory, session issuer, and
// notification hub into gin.HandlerFuncs.
type Handlers struct {
	engine *engine.Engine
	staff  staffdir.Repository
	issuer *authn.Issuer
	hub    *notify.Hub
	logger *slog.Logger
}

// NewHandlers builds a Handlers bound to its collaborators.
func NewHandlers(eng *engine.Engine, staff staffdir.Repository, issuer *authn.Issuer, hub *notify.Hub, logger *slog.Logger) *Handlers {
	return &Handlers{engine: eng, staff: staff, issuer: issuer, hub: hub, logger: logger}
}

// reserveFailed renders an engine rejection, not-found, or bad-request
// as the "<operation> failed: <reason>" detail the edge contract requires.
func reserveFailed(c *gin.Context, operation string, err error) {
	var reject *engine.RejectError
	var notFound *engine.NotFoundError
	switch {
	case errors.As(err, &reject):
		c.JSON(http.StatusBadRequest, newErrorResponse(operation+" failed: "+reject.Message))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, newErrorResponse(operation+" failed: "+notFound.Error()))
	case errors.Is(err, ErrBadRequest):
		c.JSON(http.StatusBadRequest, newErrorResponse(operation+" failed: "+err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, newErrorResponse(operation+" failed: "+err.Error()))
	}
}

// Reserve handles POST /reservations.
func (h *Handlers) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("reservation failed: "+err.Error()))
		return
	}

	resource, err := parseResource(req.Resource)
	if err != nil {
		reserveFailed(c, "reservation", err)
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		reserveFailed(c, "reservation", errMalformedField("start_date", req.StartDate, err))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		reserveFailed(c, "reservation", errMalformedField("end_date", req.EndDate, err))
		return
	}
	dateOfReservation, err := parseDate(req.DateOfReservation)
	if err != nil {
		reserveFailed(c, "reservation", errMalformedField("date_of_reservation", req.DateOfReservation, err))
		return
	}
	startTime, err := parseHalfHour(req.StartTime)
	if err != nil {
		reserveFailed(c, "reservation", errMalformedField("start_time", req.StartTime, err))
		return
	}
	endTime, err := parseHalfHour(req.EndTime)
	if err != nil {
		reserveFailed(c, "reservation", errMalformedField("end_time", req.EndTime, err))
		return
	}

	result, err := h.engine.Admit(engine.AdmitRequest{
		CustomerID:        req.CustomerID,
		Resource:          resource,
		StartDate:         startDate,
		EndDate:           endDate,
		StartTime:         startTime,
		EndTime:           endTime,
		DateOfReservation: dateOfReservation,
		StaffID:           authn.StaffID(c),
	})
	if err != nil {
		reserveFailed(c, "reservation", err)
		return
	}

	resp := ReserveResponse{
		ReservationID: result.ReservationID,
		TotalCost:     result.TotalCost,
		DownPayment:   result.DownPayment,
		Discount:      result.Discount,
	}
	h.hub.Publish(notify.Event{Type: notify.EventReservationAdmitted, Timestamp: time.Now(), Payload: resp})
	c.JSON(http.StatusOK, gin.H{"detail": resp, "status_code": http.StatusOK})
}

// Cancel handles POST /reservations/:id/cancel.
func (h *Handlers) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("cancellation failed: invalid reservation id"))
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("cancellation failed: "+err.Error()))
		return
	}
	cancelDate, err := parseDate(req.CancelDate)
	if err != nil {
		reserveFailed(c, "cancellation", errMalformedField("cancel_date", req.CancelDate, err))
		return
	}

	result, err := h.engine.Cancel(id, cancelDate, authn.StaffID(c))
	if err != nil {
		reserveFailed(c, "cancellation", err)
		return
	}

	resp := CancelResponse{PercentReturned: result.PercentReturned, Refund: result.Refund}
	h.hub.Publish(notify.Event{Type: notify.EventReservationCancelled, Timestamp: time.Now(), Payload: resp})
	c.JSON(http.StatusOK, gin.H{"detail": resp, "status_code": http.StatusOK})
}

// rangeQuery reads start_date/end_date query params (spec.md date
// format), defaulting to a window wide enough to cover any reservation
// ever admitted (the 30-day advance window bounds how far ahead a
// reservation can be, but not how far in the past one can be listed).
func rangeQuery(c *gin.Context) (calendar.Date, calendar.Date, error) {
	startRaw := c.DefaultQuery("start_date", "01-01-2000")
	endRaw := c.DefaultQuery("end_date", "12-31-2099")
	startDate, err := parseDate(startRaw)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, errMalformedField("start_date", startRaw, err)
	}
	endDate, err := parseDate(endRaw)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, errMalformedField("end_date", endRaw, err)
	}
	return startDate, endDate, nil
}

// ListReservations handles GET /reservations.
func (h *Handlers) ListReservations(c *gin.Context) {
	startDate, endDate, err := rangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("reservation listing failed: "+err.Error()))
		return
	}
	customerID := c.Query("customer_id")

	reservations := h.engine.ListReservations(startDate, endDate, customerID)
	dtos := make([]ReservationDTO, 0, len(reservations))
	for _, r := range reservations {
		dtos = append(dtos, reservationDTO(r))
	}
	c.JSON(http.StatusOK, gin.H{"detail": dtos, "status_code": http.StatusOK})
}

// ListTransactions handles GET /transactions.
func (h *Handlers) ListTransactions(c *gin.Context) {
	startDate, endDate, err := rangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("transaction listing failed: "+err.Error()))
		return
	}

	transactions := h.engine.ListTransactions(startDate, endDate)
	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, tx := range transactions {
		dtos = append(dtos, transactionDTO(tx))
	}
	c.JSON(http.StatusOK, gin.H{"detail": dtos, "status_code": http.StatusOK})
}

// FinancialSummary handles GET /reports/financial.
func (h *Handlers) FinancialSummary(c *gin.Context) {
	startDate, endDate, err := rangeQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("financial report failed: "+err.Error()))
		return
	}
	transactions := h.engine.ListTransactions(startDate, endDate)
	summary := reporter.Summarize(transactions)
	c.JSON(http.StatusOK, gin.H{"detail": summary, "status_code": http.StatusOK})
}

// Login handles POST /auth/login, verifying staff credentials and
// issuing a session token.
func (h *Handlers) Login(c *gin.Context) {
	var req struct {
		StaffID  string `json:"staff_id" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("login failed: "+err.Error()))
		return
	}

	staff, err := h.staff.VerifyPassword(req.StaffID, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, newErrorResponse("login failed: invalid credentials"))
		return
	}

	token, err := h.issuer.Issue(staff.StaffID, staff.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, newErrorResponse("login failed: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": gin.H{
		"token":    token,
		"staff_id": staff.StaffID,
		"role":     staff.Role,
	}, "status_code": http.StatusOK})
}

// Feed handles GET /feed, upgrading to a websocket connection that
// receives admission/cancellation events as they happen.
func (h *Handlers) Feed(c *gin.Context) {
	if err := notify.ServeWS(h.hub, h.logger, c.Writer, c.Request); err != nil {
		h.logger.Warn("feed: upgrade failed", "error", err)
	}
}

// CreateStaff handles POST /admin/staff.
func (h *Handlers) CreateStaff(c *gin.Context) {
	var req struct {
		StaffID  string        `json:"staff_id" binding:"required"`
		Password string        `json:"password" binding:"required,min=8"`
		Role     staffdir.Role `json:"role" binding:"required,oneof=ADMIN REGULAR"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("staff creation failed: "+err.Error()))
		return
	}
	staff, err := h.staff.Create(req.StaffID, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, staffdir.ErrDuplicate) {
			c.JSON(http.StatusConflict, newErrorResponse("staff creation failed: "+err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, newErrorResponse("staff creation failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": gin.H{"staff_id": staff.StaffID, "role": staff.Role, "permitted_resources": staff.PermittedResources}, "status_code": http.StatusOK})
}

// GrantStaffResource handles PUT /admin/staff/:staff_id/resources/:resource.
func (h *Handlers) GrantStaffResource(c *gin.Context) {
	staffID := c.Param("staff_id")
	resource := c.Param("resource")
	staff, err := h.staff.GrantResource(staffID, resource, authn.StaffID(c))
	if err != nil {
		if errors.Is(err, staffdir.ErrNotFound) {
			c.JSON(http.StatusNotFound, newErrorResponse("resource grant failed: "+err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, newErrorResponse("resource grant failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": gin.H{"staff_id": staff.StaffID, "permitted_resources": staff.PermittedResources}, "status_code": http.StatusOK})
}

// UpdateStaffRole handles PUT /admin/staff/:staff_id/role.
func (h *Handlers) UpdateStaffRole(c *gin.Context) {
	staffID := c.Param("staff_id")
	var req struct {
		Role staffdir.Role `json:"role" binding:"required,oneof=ADMIN REGULAR"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse("role update failed: "+err.Error()))
		return
	}
	staff, err := h.staff.UpdateRole(staffID, req.Role, authn.StaffID(c))
	if err != nil {
		if errors.Is(err, staffdir.ErrNotFound) {
			c.JSON(http.StatusNotFound, newErrorResponse("role update failed: "+err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, newErrorResponse("role update failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": gin.H{"staff_id": staff.StaffID, "role": staff.Role}, "status_code": http.StatusOK})
}

// DeleteStaff handles DELETE /admin/staff/:staff_id.
func (h *Handlers) DeleteStaff(c *gin.Context) {
	staffID := c.Param("staff_id")
	if err := h.staff.Delete(staffID, authn.StaffID(c)); err != nil {
		if errors.Is(err, staffdir.ErrNotFound) {
			c.JSON(http.StatusNotFound, newErrorResponse("staff deletion failed: "+err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, newErrorResponse("staff deletion failed: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": gin.H{"staff_id": staffID}, "status_code": http.StatusOK})
}
