package entities

// Content is a documentation link attached to a process description.
type Content struct {
	Code string
	Href string
	Tag  string
}
