package testutil

// FixedIDGenerator returns the same request id every time.
//
// This keeps JSON output and logs byte-identical across runs so they can be
// compared against golden files.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator returning id.
// If id is empty, Generate() returns "test-request-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-request-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
