package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/google/uuid"

	"raffle/internal/metrics"
	"raffle/internal/models"
	"raffle/internal/services"
)

const (
	// TenantCookie carries the session id of a browser.
	TenantCookie = "raffle_tenant"
	// TenantHeader lets API clients pick their session explicitly.
	TenantHeader = "X-Raffle-Tenant"

	tenantKey = "tenantID"
)

// Translator renders user-facing text.
type Translator interface {
	T(locale, key string, data map[string]any) string
	Error(locale string, err error) string
	Match(accept string) string
	Locales() []string
}

// HTTPHandler holds the dependencies for the HTTP handlers, like the raffle service.
type HTTPHandler struct {
	service    *services.RaffleService
	translator Translator
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(service *services.RaffleService, translator Translator) *HTTPHandler {
	return &HTTPHandler{
		service:    service,
		translator: translator,
	}
}

// RegisterPublicRoutes registers the routes that need no tenant.
func (h *HTTPHandler) RegisterPublicRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// RegisterTenantRoutes registers the raffle routes. The group must use TenantMiddleware.
func (h *HTTPHandler) RegisterTenantRoutes(rg *gin.RouterGroup) {
	rg.GET("/board", h.ShowBoard)
	rg.GET("/board/free", h.ShowFreeSlots)
	rg.GET("/board/occupied", h.ShowOccupiedSlots)
	rg.GET("/board/export.csv", h.ExportBoardCSV)

	rg.GET("/slots/:id", h.ShowSlot)
	rg.POST("/slots/:id/reserve", h.ReserveSlot)
	rg.DELETE("/slots/:id", h.ReleaseSlot)

	rg.GET("/participants", h.ListParticipants)
	rg.POST("/participants", h.AddParticipant)
	rg.POST("/participants/import", h.UploadParticipantsCSV)
	rg.GET("/participants/:email", h.ShowParticipant)
	rg.GET("/participants/:email/slots", h.ListParticipantSlots)

	rg.POST("/draw", h.PerformDraw)
	rg.POST("/draw/random", h.PerformRandomDraw)
	rg.GET("/draw", h.ShowLastResult)
	rg.DELETE("/draw", h.ResetDraw)
	rg.GET("/draw/history", h.ShowHistory)
	rg.GET("/draw/history.csv", h.ExportHistoryCSV)

	rg.GET("/stats", h.ShowStats)
	rg.GET("/summary", h.ShowSummary)
	rg.DELETE("/session", h.ClearSession)
}

// TenantMiddleware identifies the caller's raffle session. It reads the
// tenant header or cookie and issues a fresh id when neither is present.
func (h *HTTPHandler) TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			if cookie, err := c.Cookie(TenantCookie); err == nil {
				if _, err := uuid.Parse(cookie); err == nil {
					tenantID = cookie
				}
			}
		}
		if tenantID == "" {
			tenantID = uuid.NewString()
			c.SetCookie(TenantCookie, tenantID, 0, "/", "", false, true)
			logger.Infof("Issued new tenant id %s", tenantID)
		}
		c.Set(tenantKey, tenantID)
		c.Next()
	}
}

func tenant(c *gin.Context) string {
	return c.GetString(tenantKey)
}

// locale picks the message language from ?lang= or Accept-Language.
func (h *HTTPHandler) locale(c *gin.Context) string {
	if lang := c.Query("lang"); lang != "" {
		return h.translator.Match(lang)
	}
	return h.translator.Match(c.GetHeader("Accept-Language"))
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch models.KindOf(err) {
	case models.KindParticipantNotFound:
		return http.StatusNotFound
	case models.KindDuplicateParticipant, models.KindSlotOccupied, models.KindSlotAlreadyFree:
		return http.StatusConflict
	case models.KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (h *HTTPHandler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Errorf("tenant %s: %s %s: %v", tenant(c), c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{
		"error": h.translator.Error(h.locale(c), err),
		"kind":  models.KindOf(err).String(),
	})
}

// slotParam parses the :id path parameter. Range is checked by the board.
func slotParam(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &models.Error{Kind: models.KindInvalidSlotNumber, Input: raw}
	}
	return id, nil
}

type slotView struct {
	ID       int                 `json:"id"`
	Label    string              `json:"label"`
	Occupied bool                `json:"occupied"`
	Occupant *models.Participant `json:"occupant,omitempty"`
}

func newSlotView(s models.Slot) slotView {
	return slotView{ID: s.ID, Label: s.Label(), Occupied: s.Occupied(), Occupant: s.Occupant}
}

func newSlotViews(slots []models.Slot) []slotView {
	out := make([]slotView, len(slots))
	for i, s := range slots {
		out[i] = newSlotView(s)
	}
	return out
}

// Health reports liveness, the number of sessions in memory and the
// available languages.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.service.SessionCount(),
		"locales":  h.translator.Locales(),
	})
}

// ShowBoard returns the 100 slots.
func (h *HTTPHandler) ShowBoard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": newSlotViews(h.service.Board(tenant(c)))})
}

// ShowFreeSlots returns the free slots.
func (h *HTTPHandler) ShowFreeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": newSlotViews(h.service.FreeSlots(tenant(c)))})
}

// ShowOccupiedSlots returns the reserved slots.
func (h *HTTPHandler) ShowOccupiedSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": newSlotViews(h.service.OccupiedSlots(tenant(c)))})
}

// ShowSlot returns one slot.
func (h *HTTPHandler) ShowSlot(c *gin.Context) {
	id, err := slotParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	slot, err := h.service.Slot(tenant(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSlotView(slot))
}

type reserveRequest struct {
	Email string `form:"email" json:"email"`
}

// ReserveSlot reserves a slot for a registered participant.
func (h *HTTPHandler) ReserveSlot(c *gin.Context) {
	id, err := slotParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req reserveRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Reserve(tenant(c), id, req.Email); err != nil {
		h.fail(c, err)
		return
	}
	slot, err := h.service.Slot(tenant(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newSlotView(slot))
}

// ReleaseSlot frees a slot.
func (h *HTTPHandler) ReleaseSlot(c *gin.Context) {
	id, err := slotParam(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.service.Release(tenant(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListParticipants returns the participants in registration order.
func (h *HTTPHandler) ListParticipants(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"participants": h.service.Participants(tenant(c))})
}

type registerRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// AddParticipant registers a participant.
func (h *HTTPHandler) AddParticipant(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.service.Register(tenant(c), req.Name, req.Email, req.Phone)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

type importIssueView struct {
	Row    int      `json:"row"`
	Record []string `json:"record"`
	Error  string   `json:"error"`
	Kind   string   `json:"kind"`
}

// UploadParticipantsCSV handles the CSV upload for participants.
func (h *HTTPHandler) UploadParticipantsCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("participantCSV")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving file: " + err.Error()})
		return
	}
	defer file.Close()

	report, err := h.service.ImportParticipants(tenant(c), file)
	if err != nil {
		logger.Infof("Error reading participant CSV: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	locale := h.locale(c)
	skipped := make([]importIssueView, len(report.Skipped))
	for i, issue := range report.Skipped {
		skipped[i] = importIssueView{
			Row:    issue.Row,
			Record: issue.Record,
			Error:  h.translator.Error(locale, issue.Err),
			Kind:   models.KindOf(issue.Err).String(),
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"imported": report.Imported,
		"skipped":  skipped,
	})
}

// ShowParticipant returns one participant.
func (h *HTTPHandler) ShowParticipant(c *gin.Context) {
	p, err := h.service.FindParticipant(tenant(c), c.Param("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListParticipantSlots returns the slots held by a participant.
func (h *HTTPHandler) ListParticipantSlots(c *gin.Context) {
	slots, err := h.service.SlotsForParticipant(tenant(c), c.Param("email"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": newSlotViews(slots)})
}

type drawRequest struct {
	Slot json.Number `form:"slot" json:"slot"`
}

// PerformDraw resolves a manually entered winning number.
func (h *HTTPHandler) PerformDraw(c *gin.Context) {
	var req drawRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, &models.Error{Kind: models.KindInvalidSlotNumber})
		return
	}
	id, err := models.ParseSlotNumber(req.Slot.String())
	if err != nil {
		h.fail(c, err)
		return
	}
	result, err := h.service.DrawBySlot(tenant(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PerformRandomDraw runs a random draw.
func (h *HTTPHandler) PerformRandomDraw(c *gin.Context) {
	draw, err := h.service.DrawRandom(tenant(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, draw)
}

// ShowLastResult returns the retained outcome of the latest draw.
func (h *HTTPHandler) ShowLastResult(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.LastResult(tenant(c)))
}

// ResetDraw forgets the latest draw.
func (h *HTTPHandler) ResetDraw(c *gin.Context) {
	h.service.ResetDraw(tenant(c))
	c.Status(http.StatusNoContent)
}

// ShowHistory returns every draw of the session.
func (h *HTTPHandler) ShowHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"draws": h.service.History(tenant(c))})
}

// ShowStats returns the statistics panel figures.
func (h *HTTPHandler) ShowStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Snapshot(tenant(c)))
}

// ShowSummary returns the plain-text report.
func (h *HTTPHandler) ShowSummary(c *gin.Context) {
	c.String(http.StatusOK, h.service.Summary(tenant(c), h.locale(c)))
}

// ClearSession drops everything stored for the caller.
func (h *HTTPHandler) ClearSession(c *gin.Context) {
	h.service.ClearSession(tenant(c))
	c.Status(http.StatusNoContent)
}

// ExportBoardCSV handles the request to download the board as a CSV file.
func (h *HTTPHandler) ExportBoardCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=raffle_board.csv")

	if err := h.service.WriteBoardCSV(tenant(c), h.locale(c), c.Writer); err != nil {
		logger.Infof("Error writing board CSV: %v", err)
		c.String(http.StatusInternalServerError, "Error writing CSV")
	}
}

// ExportHistoryCSV handles the request to download the draw history as a CSV file.
func (h *HTTPHandler) ExportHistoryCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment;filename=raffle_draws.csv")

	if err := h.service.WriteHistoryCSV(tenant(c), h.locale(c), c.Writer); err != nil {
		logger.Infof("Error writing history CSV: %v", err)
		c.String(http.StatusInternalServerError, "Error writing CSV")
	}
}
