package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Ricky06202/tshirt-stryd/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const adminOrdersPath = "/admin/pedidos"

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrMissingOrderData)
		return
	}

	in := services.SubmitOrderInput{
		Persona:        req.Persona,
		Nombre:         req.Nombre,
		TurnstileToken: req.TurnstileToken,
		RemoteIP:       c.ClientIP(),
	}
	if v := req.TallaID.value(); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(c, errInvalidData)
			return
		}
		in.TallaID = id
	}
	for _, raw := range req.EstiloIDs {
		id, err := strconv.ParseUint(raw.value(), 10, 64)
		if err != nil {
			respondError(c, services.ErrUnknownStyles)
			return
		}
		in.EstiloIDs = append(in.EstiloIDs, id)
	}

	res, err := h.orders.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreateOrderResponse{
		Success:     true,
		Message:     "Pedido realizado con éxito",
		PedidoID:    res.Order.ID,
		WhatsAppURL: res.WhatsAppURL,
	})
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) TogglePaid(c *gin.Context) {
	id, err := parseID(c.PostForm("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.orders.TogglePaid(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, adminOrdersPath)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	rawID, rawAmount := c.PostForm("id"), strings.TrimSpace(c.PostForm("monto"))
	if strings.TrimSpace(rawID) == "" || rawAmount == "" {
		respondError(c, &services.ValidationError{Msg: "ID y monto requeridos"})
		return
	}
	id, err := parseID(rawID)
	if err != nil {
		respondError(c, errInvalidData)
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		respondError(c, errInvalidData)
		return
	}
	if _, err := h.orders.RecordPayment(c.Request.Context(), id, amount); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, adminOrdersPath)
}

func (h *Handler) UpdateDate(c *gin.Context) {
	rawID, rawDate := c.PostForm("id"), c.PostForm("date")
	if strings.TrimSpace(rawID) == "" || strings.TrimSpace(rawDate) == "" {
		respondError(c, &services.ValidationError{Msg: "ID y fecha requeridos"})
		return
	}
	id, err := parseID(rawID)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.orders.UpdateDate(c.Request.Context(), id, rawDate); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, adminOrdersPath)
}

func (h *Handler) UpdateStyles(c *gin.Context) {
	id, err := parseID(c.PostForm("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	styleIDs, err := parseIDList(c.PostFormArray("estilos"))
	if err != nil {
		respondError(c, services.ErrUnknownStyles)
		return
	}
	if _, err := h.orders.ReplaceStyles(c.Request.Context(), id, styleIDs); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, adminOrdersPath)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := parseID(c.PostForm("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, adminOrdersPath)
}
