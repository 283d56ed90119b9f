package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Available acompaña a INSUFFICIENT_STOCK para que la interfaz pueda
	// mostrar la cantidad disponible.
	Available *int64 `json:"available,omitempty"`
}
