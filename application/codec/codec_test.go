package codec_test

import (
	"testing"

	"github.com/eoepca/owl-sdk/application/codec"
	"github.com/eoepca/owl-sdk/domain/entities"
	domainerrors "github.com/eoepca/owl-sdk/domain/errors"
	"github.com/eoepca/owl-sdk/guest/guesttest"
	"github.com/eoepca/owl-sdk/internal/testutil"
	"github.com/eoepca/owl-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_Sample(t *testing.T) {
	data, err := codec.Encode(guesttest.SampleDescription())
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "pkg1", got.GetPackageIdentifier())
	assert.Equal(t, "proc1", got.GetIdentifier())
	assert.Empty(t, got.GetContents())

	inputs := got.GetInputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, entities.TypeLiteralData, inputs[0].GetType())
	lit, ok := inputs[0].Literal()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, lit.AllowedValues())
	assert.Equal(t, "string", lit.DataType())

	outputs := got.GetOutputs()
	require.Len(t, outputs, 1)
	cd, ok := outputs[0].Complex()
	require.True(t, ok)
	require.Len(t, cd.Supported(), 1)
	assert.Equal(t, "application/json", cd.Supported()[0].MimeType)
	assert.Equal(t, int64(16), cd.MaximumMegabytes())
}

func TestEncodeDecode_Rich(t *testing.T) {
	want := guesttest.RichDescription()
	data, err := codec.Encode(want)
	require.NoError(t, err)

	got, err := codec.Decode(data)
	require.NoError(t, err)
	testutil.AssertSameDescription(t, want, got)

	box, ok := got.GetInputs()[1].BoundingBox()
	require.True(t, ok)
	assert.Equal(t, "EPSG:4326", box.DefaultCRS())
	assert.Equal(t, 0, got.GetInputs()[1].MinOccurs())
	assert.Equal(t, 1, got.GetInputs()[1].MaxOccurs())

	raster, ok := got.GetOutputs()[1].Complex()
	require.True(t, ok)
	require.NotNil(t, raster.DefaultSupported())
	assert.Equal(t, "image/tiff", raster.DefaultSupported().MimeType)
}

func TestEncode_Wire(t *testing.T) {
	data, err := codec.Encode(guesttest.SampleDescription())
	require.NoError(t, err)

	testutil.AssertJSONEqual(t, `{
		"package_identifier": "pkg1",
		"identifier": "proc1",
		"title": "Sample process",
		"abstract": "Reference description used by the stub parser",
		"inputs": [{
			"type": "LiteralData",
			"identifier": "input1",
			"title": "Input value",
			"min_occurs": 1,
			"max_occurs": 0,
			"literal": {"allowed_values": ["a", "b"], "default": "a", "data_type": "string"}
		}],
		"outputs": [{
			"type": "ComplexData",
			"identifier": "output1",
			"min_occurs": 1,
			"max_occurs": 0,
			"complex": {
				"supported": [{"mime_type": "application/json", "encoding": "UTF-8"}],
				"maximum_megabytes": 16
			}
		}]
	}`, string(data))
}

func TestEncode_Nil(t *testing.T) {
	_, err := codec.Encode(nil)
	var wfErr *domainerrors.WireFormatError
	require.ErrorAs(t, err, &wfErr)
	assert.Equal(t, "encode", wfErr.Operation)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOp string
	}{
		{name: "not json", input: "<xml/>", wantOp: "decode"},
		{name: "missing identifier", input: `{"package_identifier":"p"}`, wantOp: "validate"},
		{name: "bad occurs", input: `{"identifier":"p","inputs":[{"type":"LiteralData","identifier":"i","min_occurs":3,"max_occurs":1,"literal":{}}]}`, wantOp: "validate"},
		{name: "unknown kind", input: `{"identifier":"p","inputs":[{"type":"Raster","identifier":"i"}]}`, wantOp: "validate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode([]byte(tt.input))
			var wfErr *domainerrors.WireFormatError
			require.ErrorAs(t, err, &wfErr)
			assert.Equal(t, tt.wantOp, wfErr.Operation)
		})
	}
}

func TestDecodeWith_NilValidatorStillRejectsBrokenTrees(t *testing.T) {
	_, err := codec.DecodeWith([]byte(`{"identifier":"p","inputs":[{"type":"Raster","identifier":"i"}]}`), nil)
	assert.ErrorContains(t, err, `unknown type "Raster"`)

	_, err = codec.DecodeWith([]byte(`{"identifier":"p","outputs":[{"type":"LiteralData","identifier":"o","min_occurs":2,"max_occurs":1}]}`), nil)
	assert.ErrorContains(t, err, "below minOccurs")
}

func TestFromWire_DefaultDataType(t *testing.T) {
	p, err := codec.FromWire(&wireformat.ParameterWire{
		Identifier: "p",
		Inputs: []wireformat.ParamWire{{
			Type:       wireformat.TypeLiteralData,
			Identifier: "i",
			MinOccurs:  1,
			Literal:    &wireformat.LiteralWire{},
		}},
	})
	require.NoError(t, err)
	lit, ok := p.GetInputs()[0].Literal()
	require.True(t, ok)
	assert.Equal(t, "string", lit.DataType())
}
