package reconcile

// Config holds configuration for the reconciliation engine.
type Config struct {
	// BatchSize is the number of row updates applied per chunk.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
	// Ignore is a comma-separated list of fields excluded from
	// reconciliation (name, channel, logo, tvgid).
	Ignore string `mapstructure:"ignore" default:""`
}

// IgnoredFields parses the configured ignore list into a FieldSet.
func (c Config) IgnoredFields() FieldSet {
	return ParseFields(c.Ignore)
}
