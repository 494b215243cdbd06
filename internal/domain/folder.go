package domain

import "strconv"

// ClientFolder is one client's top-level directory under a root
type ClientFolder struct {
	// Code is the 3-digit client code, empty for flat roots
	Code string `json:"code" yaml:"code"`

	// DisplayName is the client name shown to the operator, never empty
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Name is the folder name on disk
	Name string `json:"name" yaml:"name"`

	// Path is the absolute location of the folder
	Path string `json:"path" yaml:"path"`
}

// HasCode reports whether the client carries a numeric code
func (c ClientFolder) HasCode() bool {
	return c.Code != ""
}

// DrawingFolder is one drawing under a client folder, named <code>-<sequence>
type DrawingFolder struct {
	Code     string `json:"code" yaml:"code"`
	Sequence int    `json:"sequence" yaml:"sequence"`
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
}

// Less orders drawings numerically by (code, sequence)
func (d DrawingFolder) Less(other DrawingFolder) bool {
	a, b := codeValue(d.Code), codeValue(other.Code)
	if a != b {
		return a < b
	}
	return d.Sequence < other.Sequence
}

// RevisionFolder is one revision under a drawing folder, named Rev-<number>
type RevisionFolder struct {
	Number int    `json:"number" yaml:"number"`
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path" yaml:"path"`
}

// codeValue converts a digit string to its numeric value.
// Codes come from names already matched against the grammar.
func codeValue(code string) int {
	n, err := strconv.Atoi(code)
	if err != nil {
		return -1
	}
	return n
}
