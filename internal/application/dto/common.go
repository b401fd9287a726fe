package dto

// ErrorResponse cuerpo de error HTTP con código de máquina.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SimpleErrorResponse cuerpo de error {"error": "..."} usado por los endpoints de alertas y productos.
type SimpleErrorResponse struct {
	Error string `json:"error"`
}
