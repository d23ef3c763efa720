package component

// Enemy marks an entity as a mobile attacker walking its path toward an
// objective gate.
type Enemy struct {
	DefID           string
	PhysicalDefense int
	MagicResist     int
	Bounty          int
	ReachedEnd      bool
}
