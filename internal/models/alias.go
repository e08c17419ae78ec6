package models

// CustomerAlias maps any customer name containing one of Patterns to
// Canonical. Patterns are matched case and accent insensitively.
type CustomerAlias struct {
	Canonical string   `yaml:"canonical" json:"canonical"`
	Patterns  []string `yaml:"patterns" json:"patterns"`
}

// CustomerAliasesConfig is the layout of the customer alias file.
type CustomerAliasesConfig struct {
	Customers []CustomerAlias `yaml:"customers"`
}
