package core

// Level is the severity attached to an event. It is treated opaquely: the
// formatter only ever reads its textual name, so any level scheme an
// application already uses can be adapted by implementing this interface.
type Level interface {
	Name() string
}

type namedLevel string

func (l namedLevel) Name() string { return string(l) }

// LevelNamed returns a Level with the given name.
func LevelNamed(name string) Level {
	return namedLevel(name)
}
