package param

// UnitGainParameter creates a linear gain parameter over [0, 1], shown as
// a percentage, defaulting to unity.
func UnitGainParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 1).
		Default(1).
		Unit("%").
		Formatter(UnitPercentFormatter, UnitPercentParser)
}

// LocationParameter creates a position parameter across the speaker
// array: 0 is the leftmost channel, 1 the rightmost, default centre.
func LocationParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 1).
		Default(0.5).
		Formatter(LocationFormatter, LocationParser)
}
