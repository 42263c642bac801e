// Package catalog loads unit-table files written in CUE or YAML.
//
// A table file declares base and derived units, prefixes, the roots that
// accept prefixes, and generated symbols to exclude. By default a file
// extends the built-in definitions; with replace set it stands alone:
//
//	base: [{symbol: "furlong", factor: 201.168, dimensions: {L: 1}}]
//	prefixable: ["furlong"]
//
// CUE files are validated against an embedded schema before decoding.
package catalog
