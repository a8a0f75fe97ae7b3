package httpapi

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	gsessions "github.com/gorilla/sessions"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stockpilot/internal/domain"
	"stockpilot/internal/repository"
	"stockpilot/internal/service"
)

const maxUploadBytes = 5 << 20

type Server struct {
	engine    *gin.Engine
	cookies   gsessions.Store
	sessions  *service.SessionManager
	assistant *service.AssistantService
	inventory *service.InventoryService
	orders    *service.OrderService
}

func NewServer(cookies gsessions.Store, sessions *service.SessionManager, assistant *service.AssistantService, inventory *service.InventoryService, orders *service.OrderService) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")))
	s := &Server{engine: r, cookies: cookies, sessions: sessions, assistant: assistant, inventory: inventory, orders: orders}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	s.engine.GET("/", s.withSession, s.dashboard)

	v1 := s.engine.Group("/api/v1", s.withSession)
	{
		inventory := v1.Group("/inventory")
		inventory.GET("", s.listInventory)
		inventory.GET("/stats", s.inventoryStats)
		inventory.GET("/:id", s.getItem)
		inventory.POST("/upload", s.uploadInventory)

		chat := v1.Group("/chat")
		chat.GET("/turns", s.listTurns)
		chat.POST("/messages", s.sendMessage)

		orders := v1.Group("/orders")
		orders.POST("", s.confirmOrder)
		orders.GET("", s.listOrders)
		orders.GET("/:id", s.getOrder)
		orders.POST("/:id/cancel", s.cancelOrder)
	}
}

// Inventory handlers

// @Summary List inventory items
// @Tags inventory
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category"
// @Param status query string false "healthy|low|out|surplus"
// @Success 200 {array} domain.InventoryItem
// @Failure 400 {object} map[string]string
// @Router /inventory [get]
func (s *Server) listInventory(c *gin.Context) {
	f := repository.ItemFilter{NameSubstring: c.Query("q"), Category: c.Query("category")}
	if v := c.Query("status"); v != "" {
		st, ok := domain.ParseStockStatus(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		f.Status = st
	}
	list, err := s.inventory.List(c, session(c), f)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get inventory item by id
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} domain.InventoryItem
// @Failure 404 {object} map[string]string
// @Router /inventory/{id} [get]
func (s *Server) getItem(c *gin.Context) {
	it, err := s.inventory.GetByID(c, session(c), c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, it)
}

// @Summary Dashboard statistics
// @Tags inventory
// @Produce json
// @Success 200 {object} domain.Stats
// @Router /inventory/stats [get]
func (s *Server) inventoryStats(c *gin.Context) {
	st, err := s.inventory.Stats(c, session(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Replace inventory from a CSV upload
// @Description Replaces the whole inventory and asks the assistant for a summary.
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param charset formData string false "Text encoding label, default utf-8"
// @Success 200 {object} service.UploadResult
// @Failure 400 {object} map[string]string
// @Router /inventory/upload [post]
func (s *Server) uploadInventory(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read file"})
		return
	}
	defer f.Close()

	res, err := s.inventory.Upload(modelContext(c), session(c), f, c.PostForm("charset"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Chat handlers

// @Summary Conversation transcript
// @Tags chat
// @Produce json
// @Success 200 {array} domain.Turn
// @Router /chat/turns [get]
func (s *Server) listTurns(c *gin.Context) {
	turns, err := s.assistant.Transcript(c, session(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, turns)
}

type sendMessageReq struct {
	Text string `json:"text" binding:"required"`
}

// @Summary Send a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param input body sendMessageReq true "Message"
// @Success 200 {object} service.Exchange
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /chat/messages [post]
func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	ex, err := s.assistant.Send(modelContext(c), session(c), req.Text)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ex)
}

// Order handlers

type confirmOrderReq struct {
	TurnID string `json:"turn_id" binding:"required"`
}

// @Summary Confirm the purchase order drafted in an assistant turn
// @Tags orders
// @Accept json
// @Produce json
// @Param input body confirmOrderReq true "Turn"
// @Success 201 {object} domain.OrderConfirmation
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (s *Server) confirmOrder(c *gin.Context) {
	var req confirmOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.Confirm(c, session(c), req.TurnID)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary List confirmed orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.OrderConfirmation
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.List(c, session(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderConfirmation
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, session(c), c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Cancel order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.OrderConfirmation
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (s *Server) cancelOrder(c *gin.Context) {
	o, err := s.orders.CancelOrder(c, session(c), c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// modelContext detaches from the client: a model call in flight is never aborted.
func modelContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrEmptyUpload):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSessionBusy),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrAlreadyConfirmed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
