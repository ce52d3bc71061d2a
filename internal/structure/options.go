package structure

// Option customizes entity construction.
type Option func(*options)

type options struct {
	id       *int
	forceID  *int
	torqueID *int
	unknownX bool
	unknownY bool
	rawFlags bool
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithID requests an explicit id instead of the next free one. Used when
// reloading a saved structure.
func WithID(id int) Option {
	return func(o *options) { o.id = &id }
}

// WithReactionIDs requests explicit ids for the reaction force and torque
// owned by a support.
func WithReactionIDs(forceID, torqueID int) Option {
	return func(o *options) {
		o.forceID = &forceID
		o.torqueID = &torqueID
	}
}

// Unknown marks both components of a force, or a torque, as unknown.
func Unknown() Option {
	return func(o *options) {
		o.unknownX = true
		o.unknownY = true
	}
}

// UnknownX marks the global x component of a force as unknown.
func UnknownX() Option {
	return func(o *options) { o.unknownX = true }
}

// UnknownY marks the global y component of a force as unknown.
func UnknownY() Option {
	return func(o *options) { o.unknownY = true }
}

// WithRawFlags keeps a support's unknown flags exactly as given, skipping
// the mounting angle rule. Saved supports already carry derived flags.
func WithRawFlags() Option {
	return func(o *options) { o.rawFlags = true }
}
