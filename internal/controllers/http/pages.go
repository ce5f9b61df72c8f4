package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/services"
	"github.com/Ricky06202/tshirt-stryd/internal/wizard"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	msgPersonaTooShort = "El nombre debe tener más de 2 caracteres"
	msgIncompleteOrder = "Completa tu nombre, la talla y al menos un estilo"
)

// wizardView is what pedido.html renders.
type wizardView struct {
	S           wizard.State
	Catalog     *services.Catalog
	Talla       string
	StyleNames  []string
	Total       decimal.Decimal
	WhatsAppURL string
	SiteKey     string
}

func (v wizardView) Visible(step int) bool { return wizard.Visible(v.S, wizard.Step(step)) }
func (v wizardView) Editable(step int) bool { return wizard.Editable(v.S, wizard.Step(step)) }
func (v wizardView) Current(step int) bool { return v.S.Step == wizard.Step(step) }
func (v wizardView) Selected(id uint64) bool { return wizard.Selected(v.S, id) }
func (v wizardView) CanSubmit() bool { return wizard.CanSubmit(v.S) }

func (v *wizardView) summarize() {
	for _, s := range v.Catalog.Tallas {
		if s.ID == v.S.TallaID {
			v.Talla = s.Talla
		}
	}
	byID := make(map[uint64]domain.Style, len(v.Catalog.Estilos))
	for _, s := range v.Catalog.Estilos {
		byID[s.ID] = s
	}
	chosen := make([]domain.Style, 0, len(v.S.EstiloIDs))
	for _, id := range v.S.EstiloIDs {
		if s, ok := byID[id]; ok {
			chosen = append(chosen, s)
			v.StyleNames = append(v.StyleNames, s.Nombre)
		}
	}
	v.Total = domain.SumPrices(chosen)
}

// OrderWizard renders the order form. Every button posts the whole form
// back with an action; the step machine decides what changes.
func (h *Handler) OrderWizard(c *gin.Context) {
	cat, err := h.catalog.Catalog(c.Request.Context())
	if err != nil {
		log.Printf("order page catalog error: %v", err)
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}

	view := wizardView{Catalog: cat, SiteKey: h.siteKey, S: wizard.New()}
	if c.Request.Method == http.MethodPost {
		view.S, view.WhatsAppURL = h.applyWizardAction(c, wizardStateFromForm(c))
	}
	view.summarize()
	c.HTML(http.StatusOK, "pedido.html", view)
}

func wizardStateFromForm(c *gin.Context) wizard.State {
	st := wizard.New()
	if n, err := strconv.Atoi(c.PostForm("step")); err == nil && n >= int(wizard.NamingCustomer) && n <= int(wizard.PickingStyles) {
		st.Step = wizard.Step(n)
	}
	st.Persona = c.PostForm("persona")
	st.NombreCamisa = c.PostForm("nombre")
	if id, err := strconv.ParseUint(c.PostForm("talla"), 10, 64); err == nil {
		st.TallaID = id
	}
	if ids, err := parseIDList(c.PostFormArray("estilos")); err == nil {
		st.EstiloIDs = ids
	}
	return st
}

func (h *Handler) applyWizardAction(c *gin.Context, st wizard.State) (wizard.State, string) {
	kind, arg, _ := strings.Cut(c.PostForm("action"), ":")
	id, _ := strconv.ParseUint(arg, 10, 64)

	switch kind {
	case "persona":
		st = wizard.Apply(st, wizard.Event{Kind: wizard.SetPersona, Text: c.PostForm("persona")})
		next := wizard.Apply(st, wizard.Event{Kind: wizard.ConfirmPersona})
		if next.Step == st.Step {
			next.Error = msgPersonaTooShort
		}
		return next, ""
	case "camisa":
		st = wizard.Apply(st, wizard.Event{Kind: wizard.SetShirtName, Text: c.PostForm("nombre")})
		return wizard.Apply(st, wizard.Event{Kind: wizard.ConfirmShirtName}), ""
	case "talla":
		return wizard.Apply(st, wizard.Event{Kind: wizard.SelectSize, ID: id}), ""
	case "estilo":
		return wizard.Apply(st, wizard.Event{Kind: wizard.ToggleStyle, ID: id}), ""
	case "editar":
		return wizard.Apply(st, wizard.Event{Kind: wizard.Edit, Step: wizard.Step(id)}), ""
	case "enviar":
		return h.submitWizard(c, st)
	}
	return st, ""
}

func (h *Handler) submitWizard(c *gin.Context, st wizard.State) (wizard.State, string) {
	st = wizard.Apply(st, wizard.Event{Kind: wizard.SubmitStarted})
	if !st.Submitting {
		st.Error = msgIncompleteOrder
		return st, ""
	}

	res, err := h.orders.Submit(c.Request.Context(), services.SubmitOrderInput{
		Persona:        st.Persona,
		Nombre:         st.NombreCamisa,
		TallaID:        st.TallaID,
		EstiloIDs:      st.EstiloIDs,
		TurnstileToken: c.PostForm("cf-turnstile-response"),
		RemoteIP:       c.ClientIP(),
	})
	if err != nil {
		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Printf("order page submit error: %v", err)
		}
		return wizard.Apply(st, wizard.Event{Kind: wizard.SubmitFailed, Text: msg}), ""
	}
	return wizard.Apply(st, wizard.Event{Kind: wizard.SubmitSucceeded, ID: res.Order.ID}), res.WhatsAppURL
}

type adminOrdersView struct {
	User   User
	Orders []domain.Order
	Styles []domain.Style
}

func (h *Handler) AdminOrdersPage(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		log.Printf("admin orders page error: %v", err)
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}
	styles, err := h.catalog.AdminStyles(ctx)
	if err != nil {
		log.Printf("admin orders page styles error: %v", err)
		c.String(http.StatusInternalServerError, msgInternal)
		return
	}
	c.HTML(http.StatusOK, "admin_pedidos.html", adminOrdersView{
		User:   CurrentUser(c),
		Orders: orders,
		Styles: styles,
	})
}
