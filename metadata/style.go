package metadata

// PredefinedStyle is a style name the model knows without declaration.
type PredefinedStyle struct {
	name           string
	displayNameKey string
}

func (s *PredefinedStyle) Name() string           { return s.name }
func (s *PredefinedStyle) DisplayNameKey() string { return s.displayNameKey }
