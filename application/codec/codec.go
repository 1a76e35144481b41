// Package codec converts process descriptions between the data model and the
// JSON wire format stored in module memory.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/eoepca/owl-sdk/application/validation"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/domain/ports"
	"github.com/eoepca/owl-sdk/wireformat"
)

// defaultValidator is shared; the underlying validator caches struct metadata.
var defaultValidator = validation.NewDescriptionValidator()

// Encode serializes a description to its wire bytes.
func Encode(p *entities.OWSParameter) ([]byte, error) {
	if p == nil {
		return nil, &domainerrors.WireFormatError{Operation: "encode", Type: "OWSParameter", Err: fmt.Errorf("nil description")}
	}
	data, err := json.Marshal(ToWire(p))
	if err != nil {
		return nil, &domainerrors.WireFormatError{Operation: "encode", Type: "OWSParameter", Err: err}
	}
	return data, nil
}

// Decode parses and validates wire bytes into a new description.
func Decode(data []byte) (*entities.OWSParameter, error) {
	return DecodeWith(data, defaultValidator)
}

// DecodeWith is Decode with a caller-supplied validator. A nil validator
// skips validation.
func DecodeWith(data []byte, v ports.DescriptionValidator) (*entities.OWSParameter, error) {
	var wire wireformat.ParameterWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &domainerrors.WireFormatError{Operation: "decode", Type: "OWSParameter", Err: err}
	}

	if v != nil {
		res, err := v.Validate(&wire)
		if err != nil {
			return nil, &domainerrors.WireFormatError{Operation: "validate", Type: "OWSParameter", Err: err}
		}
		if !res.Valid {
			return nil, &domainerrors.WireFormatError{
				Operation: "validate",
				Type:      "OWSParameter",
				Err:       fmt.Errorf("invalid description: %s", res.Summary()),
			}
		}
	}

	return FromWire(&wire)
}

// ToWire converts a description to its wire structure.
func ToWire(p *entities.OWSParameter) *wireformat.ParameterWire {
	wire := &wireformat.ParameterWire{
		PackageIdentifier: p.GetPackageIdentifier(),
		Identifier:        p.Identifier,
		Title:             p.Title,
		Abstract:          p.Abstract,
		Version:           p.Version,
	}
	for _, c := range p.GetContents() {
		wire.Contents = append(wire.Contents, wireformat.ContentWire{Code: c.Code, Href: c.Href, Tag: c.Tag})
	}
	for _, in := range p.GetInputs() {
		wire.Inputs = append(wire.Inputs, paramToWire(in))
	}
	for _, out := range p.GetOutputs() {
		wire.Outputs = append(wire.Outputs, paramToWire(out))
	}
	return wire
}

func paramToWire(p *entities.Param) wireformat.ParamWire {
	w := wireformat.ParamWire{
		Type:       string(p.GetType()),
		Identifier: p.Identifier,
		Title:      p.Title,
		Abstract:   p.Abstract,
		Version:    p.Version,
		MinOccurs:  p.MinOccurs(),
		MaxOccurs:  p.MaxOccurs(),
	}

	switch d := p.Data().(type) {
	case *entities.LiteralData:
		w.Literal = &wireformat.LiteralWire{
			AllowedValues: d.AllowedValues(),
			Default:       d.Default(),
			DataType:      d.DataType(),
		}
	case *entities.BoundingBoxData:
		w.BoundingBox = &wireformat.BoundingBoxWire{
			SupportedCRS: d.SupportedCRS(),
			DefaultCRS:   d.DefaultCRS(),
		}
	case *entities.ComplexData:
		cw := &wireformat.ComplexWire{MaximumMegabytes: d.MaximumMegabytes()}
		for _, f := range d.Supported() {
			cw.Supported = append(cw.Supported, formatToWire(f))
		}
		if def := d.DefaultSupported(); def != nil {
			fw := formatToWire(def)
			cw.Default = &fw
		}
		w.Complex = cw
	}
	return w
}

func formatToWire(f *entities.Format) wireformat.FormatWire {
	return wireformat.FormatWire{MimeType: f.MimeType, Encoding: f.Encoding, Schema: f.Schema}
}

// FromWire builds a new description from its wire structure. It does not run
// the validator but still rejects unknown kinds and broken cardinalities.
func FromWire(wire *wireformat.ParameterWire) (*entities.OWSParameter, error) {
	p := entities.NewOWSParameter()
	p.SetPackageIdentifier(wire.PackageIdentifier)
	p.Descriptor = entities.Descriptor{
		Identifier: wire.Identifier,
		Title:      wire.Title,
		Abstract:   wire.Abstract,
		Version:    wire.Version,
	}
	for _, c := range wire.Contents {
		p.AddContentTagged(c.Code, c.Href, c.Tag)
	}

	for i := range wire.Inputs {
		param, err := paramFromWire(&wire.Inputs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if err := p.AddInput(param); err != nil {
			return nil, err
		}
	}
	for i := range wire.Outputs {
		param, err := paramFromWire(&wire.Outputs[i])
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		if err := p.AddOutput(param); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func paramFromWire(w *wireformat.ParamWire) (*entities.Param, error) {
	var data entities.ParamData

	switch w.Type {
	case wireformat.TypeLiteralData:
		lit := entities.NewLiteralData()
		if w.Literal != nil {
			for _, v := range w.Literal.AllowedValues {
				lit.AddAllowedValue(v)
			}
			lit.SetDefault(w.Literal.Default)
			if w.Literal.DataType != "" {
				lit.SetDataType(w.Literal.DataType)
			}
		}
		data = lit
	case wireformat.TypeBoundingBoxData:
		box := &entities.BoundingBoxData{}
		if w.BoundingBox != nil {
			for _, crs := range w.BoundingBox.SupportedCRS {
				box.AddSupportedCRS(crs)
			}
			box.SetDefaultCRS(w.BoundingBox.DefaultCRS)
		}
		data = box
	case wireformat.TypeComplexData:
		cd := &entities.ComplexData{}
		if w.Complex != nil {
			for _, fw := range w.Complex.Supported {
				f := entities.NewFormat(fw.MimeType, fw.Encoding, fw.Schema)
				if err := cd.MoveAddSupported(&f); err != nil {
					return nil, err
				}
			}
			if fw := w.Complex.Default; fw != nil {
				f := entities.NewFormat(fw.MimeType, fw.Encoding, fw.Schema)
				if err := cd.MoveDefaultSupported(&f); err != nil {
					return nil, err
				}
			}
			if w.Complex.MaximumMegabytes < 0 {
				return nil, fmt.Errorf("param %q: negative maximum_megabytes %d", w.Identifier, w.Complex.MaximumMegabytes)
			}
			cd.SetMaximumMegabytesInt(w.Complex.MaximumMegabytes)
		}
		data = cd
	default:
		return nil, fmt.Errorf("param %q: unknown type %q", w.Identifier, w.Type)
	}

	occurs, err := entities.NewOccurs(w.MinOccurs, w.MaxOccurs)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", w.Identifier, err)
	}

	param := entities.NewParam(data)
	param.Descriptor = entities.Descriptor{
		Identifier: w.Identifier,
		Title:      w.Title,
		Abstract:   w.Abstract,
		Version:    w.Version,
	}
	param.ApplyOccurs(occurs)
	return param, nil
}
