package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP. Notification acompaña los errores de
// endpoints que mutan estado.
type ErrorResponse struct {
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	Details      []string      `json:"details,omitempty"`
	Notification *Notification `json:"notification,omitempty"`
}

// Variantes de notificación que entiende la UI.
const (
	VariantDefault     = "default"
	VariantSuccess     = "success"
	VariantDestructive = "destructive"
)

// Notification triple {title, description, variant} que la UI muestra como toast.
// El backend solo la devuelve; nunca la emite por su cuenta.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// Success construye una notificación de éxito.
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantSuccess}
}

// Failure construye una notificación de error.
func Failure(title, description string) Notification {
	return Notification{Title: title, Description: description, Variant: VariantDestructive}
}

// Envelope respuesta de los endpoints que mutan estado.
type Envelope struct {
	Data         any           `json:"data"`
	Notification *Notification `json:"notification,omitempty"`
}
