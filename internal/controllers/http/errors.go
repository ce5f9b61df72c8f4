package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"
	"github.com/Ricky06202/tshirt-stryd/internal/services"

	"github.com/gin-gonic/gin"
)

const msgInternal = "Error interno del servidor"

func statusFor(err error) (int, string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Msg
	case errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound, "Pedido no encontrado"
	case errors.Is(err, services.ErrStyleNotFound):
		return http.StatusNotFound, "Estilo no encontrado"
	case errors.Is(err, services.ErrSizeNotFound):
		return http.StatusNotFound, "Talla no encontrada"
	case errors.Is(err, blob.ErrNotFound):
		return http.StatusNotFound, "Imagen no encontrada"
	case errors.Is(err, services.ErrSizeInUse):
		return http.StatusConflict, "La talla tiene pedidos asociados"
	case errors.Is(err, services.ErrChallengeFailed):
		return http.StatusForbidden, "Verificación anti-bots fallida"
	case errors.Is(err, services.ErrChallengeUnavailable):
		return http.StatusBadGateway, "No se pudo verificar el token anti-bots"
	case errors.Is(err, services.ErrBlobUpload):
		return http.StatusBadGateway, "Error al subir la imagen"
	case errors.Is(err, services.ErrBlobDelete):
		return http.StatusBadGateway, "No se pudo borrar la imagen asociada"
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

// respondError writes the JSON error body. Internal causes are logged and
// never sent to the client.
func respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s error: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": msg})
}
