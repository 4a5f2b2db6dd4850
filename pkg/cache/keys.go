package cache

// KeyVersion is mixed into every key. Bump it when the shape of cached
// values or the analysis semantics change.
const KeyVersion = 1

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey is the key of the analysis result of a normalized expression.
	ResultKey(normalized string) string

	// TreeKey is the key of a rendered expression tree.
	TreeKey(normalized, format string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<hash>".
func (DefaultKeyer) ResultKey(normalized string) string {
	return hashKey("result", KeyVersion, normalized)
}

// TreeKey returns "tree:<hash>".
func (DefaultKeyer) TreeKey(normalized, format string) string {
	return hashKey("tree", KeyVersion, normalized, format)
}

var _ Keyer = DefaultKeyer{}
