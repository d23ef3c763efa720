package component

// Health tracks current and maximum hit points. Value is clamped at zero
// when damage is applied; a zero value marks the entity for reaping.
type Health struct {
	Value int
	Max   int
}
