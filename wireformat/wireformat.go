// Package wireformat defines the ABI contract between the host and a parser
// module: the export names every module must provide, the ABI version, and the
// JSON structures a parsed process description is serialized to inside guest
// memory. These types must remain stable and backward compatible.
package wireformat

// ABIVersion is the newest module version this host understands.
const ABIVersion int64 = 3

// MinABIVersion is the oldest module version this host understands.
const MinABIVersion int64 = 1

// Capability exports. A module lacking any of them is unusable.
const (
	ExportVersion          = "version"
	ExportGetParserName    = "getParserName"
	ExportParseFromFile    = "parseFromFile"
	ExportParseFromMemory  = "parseFromMemory"
	ExportReleaseParameter = "releaseParameter"
)

// Transport exports used to move arguments into guest memory.
const (
	ExportAllocate   = "allocate"
	ExportDeallocate = "deallocate"
)

// HostModule is the import module name under which the host exposes its
// functions to guests.
const HostModule = "owl_host"

// HostLogMessage is the host function receiving guest log records.
const HostLogMessage = "log_message"

// RequiredExports lists every export resolved at load time, in resolution
// order. Resolution stops at the first missing entry.
var RequiredExports = []string{
	ExportVersion,
	ExportGetParserName,
	ExportParseFromFile,
	ExportParseFromMemory,
	ExportReleaseParameter,
	ExportAllocate,
	ExportDeallocate,
}

// Parameter kind discriminants used in ParamWire.Type.
const (
	TypeLiteralData     = "LiteralData"
	TypeBoundingBoxData = "BoundingBoxData"
	TypeComplexData     = "ComplexData"
)

// ParameterWire is the serialized root of a process description.
type ParameterWire struct {
	PackageIdentifier string        `json:"package_identifier"`
	Identifier        string        `json:"identifier" validate:"required" jsonschema:"minLength=1"`
	Title             string        `json:"title,omitempty"`
	Abstract          string        `json:"abstract,omitempty"`
	Version           string        `json:"version,omitempty"`
	Contents          []ContentWire `json:"contents,omitempty" validate:"dive"`
	Inputs            []ParamWire   `json:"inputs,omitempty" validate:"dive"`
	Outputs           []ParamWire   `json:"outputs,omitempty" validate:"dive"`
}

// ContentWire is a documentation link.
type ContentWire struct {
	Code string `json:"code" validate:"required" jsonschema:"minLength=1"`
	Href string `json:"href,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// ParamWire is one input or output. Exactly one of Literal, BoundingBox and
// Complex is set, matching Type.
type ParamWire struct {
	Type        string           `json:"type" validate:"required,oneof=LiteralData BoundingBoxData ComplexData" jsonschema:"enum=LiteralData,enum=BoundingBoxData,enum=ComplexData"`
	Identifier  string           `json:"identifier" validate:"required" jsonschema:"minLength=1"`
	Title       string           `json:"title,omitempty"`
	Abstract    string           `json:"abstract,omitempty"`
	Version     string           `json:"version,omitempty"`
	MinOccurs   int              `json:"min_occurs" validate:"gte=0" jsonschema:"minimum=0"`
	MaxOccurs   int              `json:"max_occurs" validate:"gte=0" jsonschema:"minimum=0"`
	Literal     *LiteralWire     `json:"literal,omitempty" validate:"required_if=Type LiteralData,excluded_unless=Type LiteralData"`
	BoundingBox *BoundingBoxWire `json:"bounding_box,omitempty" validate:"required_if=Type BoundingBoxData,excluded_unless=Type BoundingBoxData"`
	Complex     *ComplexWire     `json:"complex,omitempty" validate:"required_if=Type ComplexData,excluded_unless=Type ComplexData"`
}

// LiteralWire is the LiteralData state.
type LiteralWire struct {
	AllowedValues []string `json:"allowed_values,omitempty"`
	Default       string   `json:"default,omitempty"`
	DataType      string   `json:"data_type,omitempty"`
}

// BoundingBoxWire is the BoundingBoxData state.
type BoundingBoxWire struct {
	SupportedCRS []string `json:"supported_crs,omitempty"`
	DefaultCRS   string   `json:"default_crs,omitempty"`
}

// ComplexWire is the ComplexData state.
type ComplexWire struct {
	Supported        []FormatWire `json:"supported,omitempty" validate:"dive"`
	Default          *FormatWire  `json:"default,omitempty"`
	MaximumMegabytes int64        `json:"maximum_megabytes,omitempty" validate:"gte=0" jsonschema:"minimum=0"`
}

// FormatWire is a mimeType/encoding/schema triple.
type FormatWire struct {
	MimeType string `json:"mime_type"`
	Encoding string `json:"encoding,omitempty"`
	Schema   string `json:"schema,omitempty"`
}
