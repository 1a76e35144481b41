package entities

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParam_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		param *Param
		want  ParamType
	}{
		{name: "literal", param: NewLiteralParam(), want: TypeLiteralData},
		{name: "bounding box", param: NewBoundingBoxParam(), want: TypeBoundingBoxData},
		{name: "complex", param: NewComplexParam(), want: TypeComplexData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.param.GetType())
			assert.Equal(t, 1, tt.param.MinOccurs())
			assert.Equal(t, 0, tt.param.MaxOccurs())

			_, isLiteral := tt.param.Literal()
			_, isBox := tt.param.BoundingBox()
			_, isComplex := tt.param.Complex()
			assert.Equal(t, tt.want == TypeLiteralData, isLiteral)
			assert.Equal(t, tt.want == TypeBoundingBoxData, isBox)
			assert.Equal(t, tt.want == TypeComplexData, isComplex)
		})
	}
}

func TestNewParam_PanicsWithoutData(t *testing.T) {
	assert.Panics(t, func() { NewParam(nil) })
}

func TestLiteralData_Defaults(t *testing.T) {
	lit := NewLiteralData()
	assert.Equal(t, "string", lit.DataType())
	assert.Empty(t, lit.AllowedValues())

	lit.AddAllowedValue("a")
	lit.AddAllowedValue("b")
	lit.SetDefault("a")
	lit.SetDataType("integer")

	assert.Equal(t, []string{"a", "b"}, lit.AllowedValues())
	assert.Equal(t, "a", lit.Default())
	assert.Equal(t, "integer", lit.DataType())
}

func TestBoundingBoxData(t *testing.T) {
	box := &BoundingBoxData{}
	box.AddSupportedCRS("EPSG:4326")
	box.AddSupportedCRS("EPSG:3857")
	box.SetDefaultCRS("EPSG:4326")

	assert.Equal(t, []string{"EPSG:4326", "EPSG:3857"}, box.SupportedCRS())
	assert.Equal(t, "EPSG:4326", box.DefaultCRS())
}

func TestParam_ApplyDescriptorAndOccurs(t *testing.T) {
	occurs, err := NewOccurs(2, 5)
	require.NoError(t, err)

	p := NewLiteralParam().
		ApplyDescriptor(Descriptor{Identifier: "in1", Title: "Input", Abstract: "first"}).
		ApplyOccurs(occurs)

	assert.Equal(t, "in1", p.GetIdentifier())
	assert.Equal(t, "Input", p.GetTitle())
	assert.Equal(t, "first", p.GetAbstract())
	assert.Equal(t, 2, p.MinOccurs())
	assert.Equal(t, 5, p.MaxOccurs())
}

func TestOWSParameter_Contents(t *testing.T) {
	o := NewOWSParameter()
	assert.False(t, o.AddContent("", "http://ignored"))
	assert.True(t, o.AddContent("docs", "http://example.com/docs"))
	assert.True(t, o.AddContentTagged("src", "http://example.com/src", "git"))

	contents := o.GetContents()
	require.Len(t, contents, 2)
	assert.Equal(t, Content{Code: "docs", Href: "http://example.com/docs"}, contents[0])
	assert.Equal(t, Content{Code: "src", Href: "http://example.com/src", Tag: "git"}, contents[1])
}

func TestOWSParameter_ExclusiveOwnership(t *testing.T) {
	a := NewOWSParameter()
	b := NewOWSParameter()
	p := NewLiteralParam()

	require.NoError(t, a.AddInput(p))
	assert.ErrorIs(t, a.AddOutput(p), ErrAlreadyOwned)
	assert.ErrorIs(t, b.AddInput(p), ErrAlreadyOwned)
	assert.NoError(t, a.AddInput(nil))

	assert.Len(t, a.GetInputs(), 1)
	assert.Empty(t, a.GetOutputs())
	assert.Empty(t, b.GetInputs())
}

func TestOWSParameter_GettersReturnCopies(t *testing.T) {
	o := NewOWSParameter()
	require.NoError(t, o.AddInput(NewLiteralParam()))

	inputs := o.GetInputs()
	inputs[0] = nil
	assert.NotNil(t, o.GetInputs()[0])
}

func TestOWSParameter_InsertionOrderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 50).Draw(t, "inputs")
		m := rapid.IntRange(0, 50).Draw(t, "outputs")
		kinds := []func() *Param{NewLiteralParam, NewBoundingBoxParam, NewComplexParam}

		o := NewOWSParameter()
		for i := 0; i < n; i++ {
			p := rapid.SampledFrom(kinds).Draw(t, "inKind")()
			p.SetIdentifier(fmt.Sprintf("in%d", i))
			if err := o.AddInput(p); err != nil {
				t.Fatal(err)
			}
		}
		for i := 0; i < m; i++ {
			p := rapid.SampledFrom(kinds).Draw(t, "outKind")()
			p.SetIdentifier(fmt.Sprintf("out%d", i))
			if err := o.AddOutput(p); err != nil {
				t.Fatal(err)
			}
		}

		inputs, outputs := o.GetInputs(), o.GetOutputs()
		if len(inputs) != n || len(outputs) != m {
			t.Fatalf("sizes = (%d, %d), want (%d, %d)", len(inputs), len(outputs), n, m)
		}
		for i, p := range inputs {
			if want := fmt.Sprintf("in%d", i); p.GetIdentifier() != want {
				t.Fatalf("inputs[%d] = %q, want %q", i, p.GetIdentifier(), want)
			}
		}
		for i, p := range outputs {
			if want := fmt.Sprintf("out%d", i); p.GetIdentifier() != want {
				t.Fatalf("outputs[%d] = %q, want %q", i, p.GetIdentifier(), want)
			}
		}
	})
}
