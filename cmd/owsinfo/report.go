package main

import (
	"fmt"

	"github.com/eoepca/owl-sdk/domain/entities"
)

const defaultReport = `LIB version: {{.Version}}
LIB name: {{.Name}}
********************************
{{.PackageIdentifier}}
{{.Identifier}}
{{.Title}}
{{.Abstract}}
{{range .Contents}}	{{.Code}} {{.Href}}
{{end}}inputs: {{len .Inputs}}
{{range .Inputs}}	{{.Identifier}} ({{.Type}}) [{{.Min}}..{{.Max}}]{{if .Formats}} {{join .Formats ", "}}{{end}}
{{end}}outputs: {{len .Outputs}}
{{range .Outputs}}	{{.Identifier}} ({{.Type}}) [{{.Min}}..{{.Max}}]{{if .Formats}} {{join .Formats ", "}}{{end}}
{{end}}`

// summary is the data the report templates see.
type summary struct {
	Version           int64
	Name              string
	PackageIdentifier string
	Identifier        string
	Title             string
	Abstract          string
	Contents          []entities.Content
	Inputs            []paramSummary
	Outputs           []paramSummary
}

type paramSummary struct {
	Identifier string
	Type       entities.ParamType
	Min        int
	Max        string
	Formats    []string
}

func newSummary(version int64, name string, p *entities.OWSParameter) summary {
	return summary{
		Version:           version,
		Name:              name,
		PackageIdentifier: p.GetPackageIdentifier(),
		Identifier:        p.GetIdentifier(),
		Title:             p.GetTitle(),
		Abstract:          p.GetAbstract(),
		Contents:          p.GetContents(),
		Inputs:            summarize(p.GetInputs()),
		Outputs:           summarize(p.GetOutputs()),
	}
}

func summarize(params []*entities.Param) []paramSummary {
	out := make([]paramSummary, 0, len(params))
	for _, p := range params {
		ps := paramSummary{
			Identifier: p.GetIdentifier(),
			Type:       p.GetType(),
			Min:        p.MinOccurs(),
			Max:        fmt.Sprint(p.MaxOccurs()),
		}
		if p.IsUnbounded() {
			ps.Max = "unbounded"
		}
		if cd, ok := p.Complex(); ok {
			for _, f := range cd.Supported() {
				ps.Formats = append(ps.Formats, f.MimeType)
			}
		}
		out = append(out, ps)
	}
	return out
}
