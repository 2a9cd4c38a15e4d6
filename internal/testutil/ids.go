package testutil

// FixedIDGenerator generates the same cycle ID every time.
//
// This makes --verbose output of a whole batch byte-identical across runs,
// which golden comparison of stderr relies on. Unlike batch.SequenceGenerator,
// which numbers cycles, every cycle of the batch shares the one ID.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a new fixed cycle ID generator.
//
// The ID is typically set in the scenario YAML:
//
//	cycle_id: "scenario-cycle"
//
// If id is empty, Generate() returns "test-cycle-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-cycle-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed cycle ID.
//
// Implements batch.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
