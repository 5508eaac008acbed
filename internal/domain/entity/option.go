package entity

// Option is one choice of a select field.
type Option struct {
	ID    int    `yaml:"id" json:"id"`
	Value string `yaml:"value" json:"value"`
}

// OptionCatalog holds the read-only choice lists offered by the form.
type OptionCatalog struct {
	GroupPriorities []Option `yaml:"group_priorities" json:"groupPriorities"`
	Sessions        []Option `yaml:"sessions" json:"sessions"`
	Attentions      []Option `yaml:"attentions" json:"attentions"`
}

// ContainsValue reports whether value is one of options.
func ContainsValue(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
