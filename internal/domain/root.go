package domain

// NamingMode identifies how client folders are named under a root
type NamingMode string

const (
	// NamingCoded roots hold "ccc - Client Name" folders
	NamingCoded NamingMode = "coded"
	// NamingFlat roots use the folder name as the client name
	NamingFlat NamingMode = "flat"
)

// IsValid checks if the naming mode is a known value
func (m NamingMode) IsValid() bool {
	switch m {
	case NamingCoded, NamingFlat:
		return true
	}
	return false
}

// DefaultClientCode is used for drawings of clients without a code
const DefaultClientCode = "000"

// Root is a named location holding client folders, usually a network share
type Root struct {
	// Name is the unique identifier used on the command line
	Name string `mapstructure:"name" json:"name" yaml:"name"`

	// Path to the directory, local or UNC
	Path string `mapstructure:"path" json:"path" yaml:"path"`

	// Mode selects the client naming pattern
	Mode NamingMode `mapstructure:"mode" json:"mode" yaml:"mode"`

	// CreateRevisionZero creates Rev-00 inside every new drawing
	CreateRevisionZero bool `mapstructure:"create_revision_zero" json:"create_revision_zero" yaml:"create_revision_zero"`

	// DefaultCode replaces the client code when the client has none
	DefaultCode string `mapstructure:"default_code" json:"default_code" yaml:"default_code"`
}

// CodeFor returns the code to stamp on new drawings for the given client
func (r Root) CodeFor(client ClientFolder) string {
	if client.HasCode() {
		return client.Code
	}
	if r.DefaultCode != "" {
		return r.DefaultCode
	}
	return DefaultClientCode
}
