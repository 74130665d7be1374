package layout

// Target describes the local-variable model of a back end.
type Target struct {
	Name string
	// DoubleSlots is how many slots a Float local takes.
	DoubleSlots int
}

// JVM is the classfile target: Float is a double and takes two slots.
func JVM() Target {
	return Target{Name: "jvm", DoubleSlots: 2}
}
