package param

// Builder provides a fluent API for creating parameters.
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder with a 0-1 automatable range.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:        id,
			Name:      name,
			ShortName: name,
			Min:       0,
			Max:       1,
			Flags:     CanAutomate,
		},
	}
}

// ShortName sets the short name.
func (b *Builder) ShortName(name string) *Builder {
	b.param.ShortName = name
	return b
}

// Range sets the min and max plain values.
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default value in the plain range.
func (b *Builder) Default(value float64) *Builder {
	if b.param.Max > b.param.Min {
		b.param.DefaultValue = (value - b.param.Min) / (b.param.Max - b.param.Min)
	}
	return b
}

// Unit sets the unit string.
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps.
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Flags replaces the parameter flags.
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Toggle makes this a two-state 0/1 parameter.
func (b *Builder) Toggle() *Builder {
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	b.param.DefaultValue = 0
	return b
}

// ReadOnly marks the parameter as read-only.
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= IsReadOnly
	b.param.Flags &^= CanAutomate
	return b
}

// Transient keeps the parameter out of saved state.
func (b *Builder) Transient() *Builder {
	b.param.Transient = true
	return b
}

// Formatter sets custom value formatting and parsing in the plain range.
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter set to its default.
func (b *Builder) Build() *Parameter {
	b.param.SetValue(b.param.DefaultValue)
	return b.param
}

// PercentParameter is a 0-100 % parameter.
func PercentParameter(id uint32, name string, defaultPercent float64) *Builder {
	return New(id, name).
		Range(0, 100).
		Default(defaultPercent).
		Unit("%").
		Formatter(PercentFormatter, PercentParser)
}

// ButtonParameter is an on/off control that acts on each change. VST3 has no
// momentary flag, so hosts render it as a latching switch. It is transient:
// restoring a saved "on" would look like a click.
func ButtonParameter(id uint32, name string) *Builder {
	return New(id, name).
		Toggle().
		Transient().
		Formatter(OnOffFormatter, OnOffParser)
}
