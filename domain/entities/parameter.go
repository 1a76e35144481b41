package entities

// OWSParameter is the root of a parsed process description.
type OWSParameter struct {
	Descriptor

	packageIdentifier string
	contents          []Content
	inputs            []*Param
	outputs           []*Param
}

// NewOWSParameter creates an empty description.
func NewOWSParameter() *OWSParameter {
	return &OWSParameter{}
}

// SetPackageIdentifier sets the package identifier.
func (o *OWSParameter) SetPackageIdentifier(id string) { o.packageIdentifier = id }

// GetPackageIdentifier returns the package identifier.
func (o *OWSParameter) GetPackageIdentifier() string { return o.packageIdentifier }

// AddContent appends a documentation link. Links with an empty code are
// dropped and AddContent reports false.
func (o *OWSParameter) AddContent(code, href string) bool {
	return o.AddContentTagged(code, href, "")
}

// AddContentTagged is AddContent with a tag.
func (o *OWSParameter) AddContentTagged(code, href, tag string) bool {
	if code == "" {
		return false
	}
	o.contents = append(o.contents, Content{Code: code, Href: href, Tag: tag})
	return true
}

// GetContents returns the documentation links in insertion order.
func (o *OWSParameter) GetContents() []Content {
	return append([]Content(nil), o.contents...)
}

// AddInput appends p to the inputs and takes ownership of it. A nil param is
// ignored; a param already held by another list yields ErrAlreadyOwned.
func (o *OWSParameter) AddInput(p *Param) error {
	return adopt(&o.inputs, p)
}

// AddOutput appends p to the outputs with the same rules as AddInput.
func (o *OWSParameter) AddOutput(p *Param) error {
	return adopt(&o.outputs, p)
}

func adopt(list *[]*Param, p *Param) error {
	if p == nil {
		return nil
	}
	if p.owned {
		return ErrAlreadyOwned
	}
	p.owned = true
	*list = append(*list, p)
	return nil
}

// GetInputs returns the inputs in insertion order.
func (o *OWSParameter) GetInputs() []*Param {
	return append([]*Param(nil), o.inputs...)
}

// GetOutputs returns the outputs in insertion order.
func (o *OWSParameter) GetOutputs() []*Param {
	return append([]*Param(nil), o.outputs...)
}
