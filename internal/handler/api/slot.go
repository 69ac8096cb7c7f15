package api

import (
	"net/http"

	"slot-booking/internal/domain/user"
	reqdto "slot-booking/internal/handler/dto/request"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/usecase/commands"
	"slot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	cmds commands.SlotCommands
	q    queries.SlotQueries
}

func NewSlotHandler(cmds commands.SlotCommands, q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{cmds: cmds, q: q}
}

// @Summary List slots
// @Tags slots
// @Security BearerAuth
// @Produce json
// @Param venue query string false "Venue"
// @Param status query string false "available, booked, cancelled or maintenance"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} resdto.SlotListResponse
// @Failure 400 {object} httperr.Response
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var query reqdto.SlotListQuery
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
	slots, err := resdto.FromSlotViews(page.Slots)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SlotListResponse{Slots: slots, Pagination: page.Pagination})
}

// @Summary List available slots
// @Description Available slots ordered by date and start time. Read only.
// @Tags slots
// @Security BearerAuth
// @Produce json
// @Param venue query string false "Venue"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param starts_from query string false "Earliest start (HH:MM)"
// @Param ends_by query string false "Latest end (HH:MM)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Router /slots/available [get]
func (h *SlotHandler) ListAvailable(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var query reqdto.AvailableSlotQuery
	if !bindQuery(c, &query) {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	views, err := h.q.ListAvailable(c.Request.Context(), identity, filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	slots, err := resdto.FromSlotViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// @Summary Get slot
// @Tags slots
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.respondWithSlot(c, http.StatusOK, identity, id)
}

// @Summary Create slot
// @Description super_admin only
// @Tags slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body reqdto.CreateSlotRequest true "Slot"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /slots [post]
func (h *SlotHandler) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req reqdto.CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), identity, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/slots/"+id.String())
	h.respondWithSlot(c, http.StatusCreated, identity, id)
}

// @Summary Set slot status
// @Description super_admin only. Booked slots cannot be changed.
// @Tags slots
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body reqdto.UpdateSlotStatusRequest true "Status"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /slots/{id}/status [put]
func (h *SlotHandler) SetStatus(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateSlotStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.SetStatus(c.Request.Context(), identity, id, req.Status); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithSlot(c, http.StatusOK, identity, id)
}

func (h *SlotHandler) respondWithSlot(c *gin.Context, status int, identity user.Identity, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSlotView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, res)
}
