package guesttest

import "github.com/eoepca/owl-sdk/domain/entities"

// SampleDescription returns the reference tree: package pkg1, process proc1,
// one LiteralData input and one ComplexData output offering
// application/json, no contents.
func SampleDescription() *entities.OWSParameter {
	p := entities.NewOWSParameter()
	p.SetPackageIdentifier("pkg1")
	p.SetIdentifier("proc1")
	p.SetTitle("Sample process")
	p.SetAbstract("Reference description used by the stub parser")

	in := entities.NewLiteralParam()
	in.SetIdentifier("input1")
	in.SetTitle("Input value")
	if lit, ok := in.Literal(); ok {
		lit.AddAllowedValue("a")
		lit.AddAllowedValue("b")
		lit.SetDefault("a")
	}
	mustAdopt(p.AddInput(in))

	out := entities.NewComplexParam()
	out.SetIdentifier("output1")
	if cd, ok := out.Complex(); ok {
		f := entities.NewFormat("application/json", "UTF-8", "")
		mustAdopt(cd.MoveAddSupported(&f))
		mustAdopt(cd.SetMaximumMegabytes("16"))
	}
	mustAdopt(p.AddOutput(out))

	return p
}

// RichDescription exercises every parameter kind and optional field.
func RichDescription() *entities.OWSParameter {
	p := SampleDescription()
	p.SetVersion("1.2.0")
	p.AddContentTagged("docs", "https://example.com/docs", "html")

	box := entities.NewBoundingBoxParam()
	box.SetIdentifier("aoi")
	mustAdopt(box.SetMinOccurs("0"))
	mustAdopt(box.SetMaxOccurs("1"))
	if b, ok := box.BoundingBox(); ok {
		b.AddSupportedCRS("EPSG:4326")
		b.AddSupportedCRS("EPSG:3857")
		b.SetDefaultCRS("EPSG:4326")
	}
	mustAdopt(p.AddInput(box))

	raster := entities.NewComplexParam()
	raster.SetIdentifier("raster")
	if cd, ok := raster.Complex(); ok {
		tiff := entities.NewFormat("image/tiff", "binary", "")
		png := entities.NewFormat("image/png", "base64", "")
		def := entities.NewFormat("image/tiff", "binary", "")
		mustAdopt(cd.MoveAddSupported(&tiff))
		mustAdopt(cd.MoveAddSupported(&png))
		mustAdopt(cd.MoveDefaultSupported(&def))
	}
	mustAdopt(p.AddOutput(raster))

	return p
}

func mustAdopt(err error) {
	if err != nil {
		panic(err)
	}
}
