package services

import "errors"

// ValidationError carries a message safe to show the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

var (
	ErrMissingOrderData  = invalid("Faltan datos del pedido")
	ErrUnknownStyles     = invalid("Algún estilo seleccionado no existe")
	ErrUnknownSize       = invalid("La talla seleccionada no existe")
	ErrChallengeRequired = invalid("Falta la verificación anti-bots")
	ErrMissingImage      = invalid("Falta el archivo.")
	ErrMissingFields     = invalid("Faltan campos obligatorios")
	ErrInvalidDate       = invalid("Fecha inválida")
	ErrInvalidPrice      = invalid("Precio inválido")
	ErrInvalidCollection = invalid("Colección inválida")
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrStyleNotFound = errors.New("style not found")
	ErrSizeNotFound  = errors.New("size not found")
	ErrSizeInUse     = errors.New("size referenced by orders")

	ErrChallengeFailed      = errors.New("bot challenge rejected")
	ErrChallengeUnavailable = errors.New("bot challenge verification unavailable")
	ErrBlobUpload           = errors.New("image upload failed")
	ErrBlobDelete           = errors.New("image delete failed")
)
