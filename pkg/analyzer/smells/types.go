package smells

// Thresholds configures smell detection triggers. All checks compare
// strictly greater-than.
type Thresholds struct {
	LongMethodLines      int `koanf:"long_method_lines" json:"long_method_lines"`
	LongMethodSevere     int `koanf:"long_method_severe" json:"long_method_severe"`
	LongParameterList    int `koanf:"long_parameter_list" json:"long_parameter_list"`
	HighComplexity       int `koanf:"high_complexity" json:"high_complexity"`
	HighComplexitySevere int `koanf:"high_complexity_severe" json:"high_complexity_severe"`
	LargeClassMethods    int `koanf:"large_class_methods" json:"large_class_methods"`
	GodObjectMethods     int `koanf:"god_object_methods" json:"god_object_methods"`
	GodObjectPrefixes    int `koanf:"god_object_prefixes" json:"god_object_prefixes"`
	// DuplicateWindow is the sliding-window size in normalized lines
	// for duplicate detection. 0 disables the check.
	DuplicateWindow int `koanf:"duplicate_window" json:"duplicate_window"`
}

// DefaultThresholds returns the standard detection thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LongMethodLines:      20,
		LongMethodSevere:     40,
		LongParameterList:    5,
		HighComplexity:       10,
		HighComplexitySevere: 15,
		LargeClassMethods:    15,
		GodObjectMethods:     20,
		GodObjectPrefixes:    5,
		DuplicateWindow:      6,
	}
}
