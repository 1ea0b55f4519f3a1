package catalog

// StepTemplate is one capability invocation in a label's workflow template.
// DependsOn lists capabilities (within the same workflow) whose output this
// step consumes; steps with no dependencies may be dispatched in parallel.
type StepTemplate struct {
	Capability string   `mapstructure:"capability" yaml:"capability"`
	DependsOn  []string `mapstructure:"depends_on" yaml:"depends_on,omitempty"`
}

// Entry is one intent label in the catalog: the keyword set the generator
// scores against and the capability template the synthesizer expands.
type Entry struct {
	Label    string         `mapstructure:"label" yaml:"label"`
	Keywords []string       `mapstructure:"keywords" yaml:"keywords"`
	Related  []string       `mapstructure:"related" yaml:"related,omitempty"`
	Steps    []StepTemplate `mapstructure:"steps" yaml:"steps"`
}
