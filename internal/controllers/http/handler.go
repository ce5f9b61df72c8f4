package http

import (
	"net/http"

	"github.com/Ricky06202/tshirt-stryd/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *services.CatalogService
	styles  *services.StyleService
	orders  *services.OrderService
	images  *services.ImageService
	siteKey string
}

func NewHandler(catalog *services.CatalogService, styles *services.StyleService, orders *services.OrderService, images *services.ImageService) *Handler {
	return &Handler{catalog: catalog, styles: styles, orders: orders, images: images}
}

// SetTurnstileSiteKey renders the bot-challenge widget on the order page.
func (h *Handler) SetTurnstileSiteKey(key string) {
	h.siteKey = key
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(pageTemplates)
	r.MaxMultipartMemory = 8 << 20

	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/pedido") })
	r.GET("/pedido", h.OrderWizard)
	r.POST("/pedido", h.OrderWizard)

	api := r.Group("/api")
	api.GET("/catalogo", h.GetCatalog)
	api.GET("/images/:key", h.GetImage)
	api.POST("/order", h.CreateOrder)

	guarded := r.Group("/", RequireAccess())

	guarded.GET("/admin", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/pedidos") })
	guarded.GET("/admin/pedidos", h.AdminOrdersPage)

	guarded.POST("/api/upload", h.Upload)

	admin := guarded.Group("/api/admin")
	admin.GET("/tallas", h.ListSizes)
	admin.POST("/tallas", h.CreateSize)
	admin.PUT("/tallas", h.UpdateSize)
	admin.DELETE("/tallas", h.DeleteSize)
	admin.GET("/estilos", h.ListStyles)
	admin.POST("/estilos", h.CreateStyle)
	admin.PUT("/estilos", h.UpdateStyle)
	admin.DELETE("/estilos", h.DeleteStyle)
	admin.GET("/pedidos", h.ListOrders)

	pedidos := guarded.Group("/api/pedidos")
	pedidos.POST("/toggle", h.TogglePaid)
	pedidos.POST("/abono", h.RecordPayment)
	pedidos.POST("/update-date", h.UpdateDate)
	pedidos.POST("/update-styles", h.UpdateStyles)
	pedidos.POST("/delete", h.DeleteOrder)
}
