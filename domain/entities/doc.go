// Package entities provides the process-description data model that crosses
// the plugin boundary: descriptor metadata, cardinality constraints, the three
// parameter kinds, formats and documentation links.
//
// Every entity has a single owner. Params belong to exactly one OWSParameter
// list, Formats belong to exactly one ComplexData, and a parsed OWSParameter
// belongs to the handle that produced it until that handle is released.
package entities
