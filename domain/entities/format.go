package entities

// Format describes one representation a ComplexData payload may take.
type Format struct {
	MimeType string
	Encoding string
	Schema   string

	owned bool
}

// NewFormat creates an unowned Format.
func NewFormat(mimeType, encoding, schema string) *Format {
	return &Format{MimeType: mimeType, Encoding: encoding, Schema: schema}
}

// ComplexData is a structured or binary payload parameter.
type ComplexData struct {
	supported        []*Format
	defaultSupported *Format
	maximumMegabytes int64
}

func (*ComplexData) Type() ParamType { return TypeComplexData }
func (*ComplexData) paramData()      {}

// MoveAddSupported appends *src to the supported list and clears *src.
// A nil source is ignored.
func (c *ComplexData) MoveAddSupported(src **Format) error {
	f, err := take(src)
	if f == nil || err != nil {
		return err
	}
	c.supported = append(c.supported, f)
	return nil
}

// MoveDefaultSupported makes *src the default format and clears *src.
// A nil source leaves the current default in place.
func (c *ComplexData) MoveDefaultSupported(src **Format) error {
	f, err := take(src)
	if f == nil || err != nil {
		return err
	}
	c.defaultSupported = f
	return nil
}

func take(src **Format) (*Format, error) {
	if src == nil || *src == nil {
		return nil, nil
	}
	f := *src
	if f.owned {
		return nil, ErrAlreadyOwned
	}
	f.owned = true
	*src = nil
	return f, nil
}

// Supported returns the supported formats in append order. The formats stay
// owned by c.
func (c *ComplexData) Supported() []*Format {
	return append([]*Format(nil), c.supported...)
}

// DefaultSupported returns the default format, or nil.
func (c *ComplexData) DefaultSupported() *Format { return c.defaultSupported }

// MaximumMegabytes returns the payload size limit, 0 meaning unspecified.
func (c *ComplexData) MaximumMegabytes() int64 { return c.maximumMegabytes }

// SetMaximumMegabytes parses text into the size limit. Empty text sets 0.
// Malformed or negative text leaves the field unchanged.
func (c *ComplexData) SetMaximumMegabytes(text string) error {
	n, err := parseCount("maximumMegabytes", text, 64)
	if err != nil {
		return err
	}
	c.maximumMegabytes = n
	return nil
}

// SetMaximumMegabytesInt sets the size limit directly.
func (c *ComplexData) SetMaximumMegabytesInt(n int64) { c.maximumMegabytes = n }
