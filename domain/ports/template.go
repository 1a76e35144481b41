package ports

// TemplateEngine renders report templates over a data value.
type TemplateEngine interface {
	Render(text []byte, data any) ([]byte, error)
}
