package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/Ricky06202/tshirt-stryd/internal/services"
)

var (
	errIDRequired  = &services.ValidationError{Msg: "ID requerido"}
	errInvalidID   = &services.ValidationError{Msg: "ID inválido"}
	errInvalidData = &services.ValidationError{Msg: "Datos inválidos"}
)

// looseString accepts a JSON string or number. Admin forms send ids and
// prices either way.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("expected a string or a number")
	}
	*s = looseString(n.String())
	return nil
}

func (s *looseString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func (s *looseString) value() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(string(*s))
}

type SizeRequest struct {
	ID     *looseString `json:"id"`
	Talla  *looseString `json:"talla"`
	Nombre *looseString `json:"nombre"`
}

type StyleRequest struct {
	ID     *looseString `json:"id"`
	Nombre *looseString `json:"nombre"`
	Estilo *looseString `json:"estilo"`
	Precio *looseString `json:"precio"`
	Imagen *looseString `json:"imagen"`
}

func (r StyleRequest) fields() services.StyleFields {
	return services.StyleFields{
		Nombre: r.Nombre.ptr(),
		Estilo: r.Estilo.ptr(),
		Precio: r.Precio.ptr(),
		Imagen: r.Imagen.ptr(),
	}
}

type CreateOrderRequest struct {
	Persona        string        `json:"persona"`
	Nombre         string        `json:"nombre"`
	TallaID        looseString   `json:"tallaId"`
	EstiloIDs      []looseString `json:"estiloIds"`
	TurnstileToken string        `json:"turnstileToken"`
}

type CreateOrderResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	PedidoID    uint64 `json:"pedidoId"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

type UploadResponse struct {
	Success bool        `json:"success"`
	Key     string      `json:"key"`
	Message string      `json:"message"`
	Estilo  interface{} `json:"estilo,omitempty"`
}

func parseID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errIDRequired
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parseIDList reads ids given one per value or comma separated.
func parseIDList(values []string) ([]uint64, error) {
	ids := []uint64{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, errInvalidID
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
