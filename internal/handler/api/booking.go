package api

import (
	"net/http"

	"slot-booking/internal/domain/user"
	reqdto "slot-booking/internal/handler/dto/request"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

var ErrInvalidIdempotencyKey = errs.NewKind("idempotency key must be at most 255 characters", errs.ErrValidation)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary List bookings
// @Description super_admin sees every booking and may filter by club; others see their own.
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved, rejected or cancelled"
// @Param club query string false "Club (super_admin only)"
// @Param from query string false "Created at or after (YYYY-MM-DD or RFC 3339)"
// @Param to query string false "Created at or before (YYYY-MM-DD or RFC 3339)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var query reqdto.BookingListQuery
	if !bindQuery(c, &query) {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	page, err := h.q.List(c.Request.Context(), identity, filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.BookingListResponse{
		Bookings:   resdto.FromBookingViews(page.Bookings),
		Pagination: page.Pagination,
	})
}

// @Summary List my bookings
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param status query string false "pending, approved, rejected or cancelled"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/my [get]
func (h *BookingHandler) Mine(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var query reqdto.MyBookingsQuery
	if !bindQuery(c, &query) {
		return
	}
	status, err := query.StatusFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListMine(c.Request.Context(), identity, status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Get booking
// @Description Owner or super_admin
// @Tags bookings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondWithBooking(c, http.StatusOK, identity, id)
}

// @Summary Create booking
// @Description club_admin or super_admin. Reserves the slot in the same transaction.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first result for the same key and payload"
// @Param request body reqdto.CreateBookingRequest true "Booking"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	key := c.GetHeader(idempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		httperr.Abort(c, ErrInvalidIdempotencyKey)
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), identity, req.ToInput(), key)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if result.IsReplayed {
		c.Header(replayedHeader, "true")
	}
	c.Header("Location", "/api/bookings/"+result.BookingID.String())
	h.respondWithBooking(c, http.StatusCreated, identity, result.BookingID)
}

// @Summary Update booking
// @Description Owner or super_admin while pending. Setting slot moves the booking.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Changes"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), identity, id, req.ToPatch()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithBooking(c, http.StatusOK, identity, id)
}

// @Summary Set booking status
// @Description super_admin only. pending to approved or rejected; anything to cancelled.
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) SetStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.SetStatus(c.Request.Context(), identity, id, req.Status, req.RejectionReason); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithBooking(c, http.StatusOK, identity, id)
}

// @Summary Delete booking
// @Description Owner or super_admin. Frees the slot when the booking held it.
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), identity, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) respondWithBooking(c *gin.Context, status int, identity user.Identity, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.FromBookingView(view))
}
