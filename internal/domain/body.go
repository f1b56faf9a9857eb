package domain

// Body identifies a point the ephemeris engine can compute.
// The numeric order is the engine enumeration order and is significant:
// chart output follows it.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	MeanNode
	TrueNode
	MeanApogee
)

var bodyNames = [...]string{
	Sun:        "Sun",
	Moon:       "Moon",
	Mercury:    "Mercury",
	Venus:      "Venus",
	Mars:       "Mars",
	Jupiter:    "Jupiter",
	Saturn:     "Saturn",
	Uranus:     "Uranus",
	Neptune:    "Neptune",
	Pluto:      "Pluto",
	MeanNode:   "mean Node",
	TrueNode:   "true Node",
	MeanApogee: "mean Apogee",
}

// Bodies returns the 13 enumerated bodies in engine order.
func Bodies() []Body {
	out := make([]Body, len(bodyNames))
	for i := range bodyNames {
		out[i] = Body(i)
	}
	return out
}

// Name returns the engine name of the body.
func (b Body) Name() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return "unknown"
	}
	return bodyNames[b]
}

func (b Body) String() string { return b.Name() }
