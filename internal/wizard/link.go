package wizard

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary is what the customer sends over the messaging app to coordinate
// the deposit.
type Summary struct {
	Persona      string
	NombreCamisa string
	Talla        string
	Estilos      []string
	Total        decimal.Decimal
	PaymentPhone string
}

func (s Summary) Text() string {
	shirt := s.NombreCamisa
	if strings.TrimSpace(shirt) == "" {
		shirt = "N/A"
	}
	talla := s.Talla
	if talla == "" {
		talla = "N/A"
	}
	lines := []string{
		"Hola! Estoy interesado en mi pedido de camisetas y voy a realizar el abono del 50% por *Yappy*.",
		"",
		"*Detalles del pedido:*",
		fmt.Sprintf("• Cliente: *%s*", s.Persona),
		fmt.Sprintf("• Nombre en camisa: *%s*", shirt),
		fmt.Sprintf("• Talla: *%s*", talla),
		fmt.Sprintf("• Estilos: *%s*", strings.Join(s.Estilos, ", ")),
		fmt.Sprintf("• Total: *$%s*", s.Total.String()),
		"",
	}
	if s.PaymentPhone != "" {
		lines = append(lines, fmt.Sprintf("Datos para el abono: *Yappy %s*", s.PaymentPhone))
	}
	lines = append(lines, "Por favor confírmame la recepción. Gracias!")
	return strings.Join(lines, "\n")
}

// WhatsAppLink builds the wa.me deep link with the summary pre-filled.
// phone keeps only its digits.
func WhatsAppLink(phone string, s Summary) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := strings.ReplaceAll(url.QueryEscape(s.Text()), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
