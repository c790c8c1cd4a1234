package core

// Readout is a single labelled value shown on a status panel.
type Readout struct {
	Label string
	Value string
}

// ReadoutGroup clusters related readouts for presentation purposes.
type ReadoutGroup struct {
	Name     string
	Readouts []Readout
}

// ReadoutProvider exposes a snapshot of display-only status values.
type ReadoutProvider interface {
	Readouts() []ReadoutGroup
}
