package entities

import "errors"

// ParamType is the discriminant of a parameter kind.
type ParamType string

const (
	TypeLiteralData     ParamType = "LiteralData"
	TypeBoundingBoxData ParamType = "BoundingBoxData"
	TypeComplexData     ParamType = "ComplexData"
)

// ErrAlreadyOwned is returned when a Param or Format that already has an
// owner is handed to a second one.
var ErrAlreadyOwned = errors.New("entity already has an owner")

// ParamData is the kind-specific state of a Param. The set of implementations
// is closed: LiteralData, BoundingBoxData and ComplexData.
type ParamData interface {
	Type() ParamType
	paramData()
}

// Param is a described, cardinality-constrained parameter. Descriptor and
// Occurs are held by value; the kind-specific part lives in Data.
type Param struct {
	Descriptor
	Occurs

	data  ParamData
	owned bool
}

// NewParam creates a Param of the kind selected by data with default Occurs.
func NewParam(data ParamData) *Param {
	if data == nil {
		panic("entities: NewParam requires param data")
	}
	return &Param{Occurs: DefaultOccurs(), data: data}
}

// NewLiteralParam creates a LiteralData param.
func NewLiteralParam() *Param { return NewParam(NewLiteralData()) }

// NewBoundingBoxParam creates a BoundingBoxData param.
func NewBoundingBoxParam() *Param { return NewParam(&BoundingBoxData{}) }

// NewComplexParam creates a ComplexData param.
func NewComplexParam() *Param { return NewParam(&ComplexData{}) }

// GetType returns the kind discriminant.
func (p *Param) GetType() ParamType { return p.data.Type() }

// Data returns the kind-specific state.
func (p *Param) Data() ParamData { return p.data }

// Literal returns the LiteralData state when the param is of that kind.
func (p *Param) Literal() (*LiteralData, bool) {
	d, ok := p.data.(*LiteralData)
	return d, ok
}

// BoundingBox returns the BoundingBoxData state when the param is of that kind.
func (p *Param) BoundingBox() (*BoundingBoxData, bool) {
	d, ok := p.data.(*BoundingBoxData)
	return d, ok
}

// Complex returns the ComplexData state when the param is of that kind.
func (p *Param) Complex() (*ComplexData, bool) {
	d, ok := p.data.(*ComplexData)
	return d, ok
}

// ApplyDescriptor copies identifier, title and abstract from d.
func (p *Param) ApplyDescriptor(d Descriptor) *Param {
	p.Identifier = d.Identifier
	p.Title = d.Title
	p.Abstract = d.Abstract
	return p
}

// ApplyOccurs copies both bounds from o.
func (p *Param) ApplyOccurs(o Occurs) *Param {
	p.minOccurs = o.minOccurs
	p.maxOccurs = o.maxOccurs
	return p
}

// LiteralData is a scalar parameter with an optional allowed-value set.
type LiteralData struct {
	allowedValues []string
	defaultValue  string
	dataType      string
}

// NewLiteralData returns LiteralData with the "string" data type.
func NewLiteralData() *LiteralData {
	return &LiteralData{dataType: "string"}
}

func (*LiteralData) Type() ParamType { return TypeLiteralData }
func (*LiteralData) paramData()      {}

// AddAllowedValue appends a value to the allowed set.
func (l *LiteralData) AddAllowedValue(value string) {
	l.allowedValues = append(l.allowedValues, value)
}

// AllowedValues returns the allowed set in insertion order.
func (l *LiteralData) AllowedValues() []string {
	return append([]string(nil), l.allowedValues...)
}

// SetDefault sets the default value.
func (l *LiteralData) SetDefault(value string) { l.defaultValue = value }

// Default returns the default value.
func (l *LiteralData) Default() string { return l.defaultValue }

// SetDataType sets the scalar data type tag.
func (l *LiteralData) SetDataType(dataType string) { l.dataType = dataType }

// DataType returns the scalar data type tag.
func (l *LiteralData) DataType() string { return l.dataType }

// BoundingBoxData is a spatial extent parameter.
type BoundingBoxData struct {
	supportedCRS []string
	defaultCRS   string
}

func (*BoundingBoxData) Type() ParamType { return TypeBoundingBoxData }
func (*BoundingBoxData) paramData()      {}

// AddSupportedCRS appends a coordinate reference system.
func (b *BoundingBoxData) AddSupportedCRS(crs string) {
	b.supportedCRS = append(b.supportedCRS, crs)
}

// SupportedCRS returns the supported systems in insertion order.
func (b *BoundingBoxData) SupportedCRS() []string {
	return append([]string(nil), b.supportedCRS...)
}

// SetDefaultCRS sets the default system.
func (b *BoundingBoxData) SetDefaultCRS(crs string) { b.defaultCRS = crs }

// DefaultCRS returns the default system.
func (b *BoundingBoxData) DefaultCRS() string { return b.defaultCRS }
