package types

// ============================================================================
// Decode Limits Constants
// ============================================================================
// Minecraft itself refuses trees nested deeper than 512 levels. The count
// limits below are far beyond anything the game writes but keep hostile
// input from asking for multi-gigabyte allocations.

const (
	// MaxDepthPractical matches the nesting limit enforced by the game.
	MaxDepthPractical = 512

	// MaxDepthDeep allows very deep trees for special cases.
	MaxDepthDeep = 2048

	// MaxDepthShallow is a conservative limit for untrusted input.
	MaxDepthShallow = 64

	// MaxDepthHard applies when MaxDepth is unlimited. Recursion never goes
	// deeper than this.
	MaxDepthHard = 1 << 16

	// MaxArrayLenDefault bounds BYTE/INT/LONG array element counts.
	MaxArrayLenDefault = 64 << 20

	// MaxArrayLenStrict is a conservative array bound.
	MaxArrayLenStrict = 1 << 20

	// MaxListLenDefault bounds list element counts.
	MaxListLenDefault = 16 << 20

	// MaxListLenStrict is a conservative list bound.
	MaxListLenStrict = 1 << 16

	// MaxCompoundEntriesDefault bounds the entries of one compound.
	MaxCompoundEntriesDefault = 1 << 20

	// MaxCompoundEntriesStrict is a conservative compound bound.
	MaxCompoundEntriesStrict = 1 << 12

	// MaxInputSize1GB is the default bound for an uncompressed tree.
	MaxInputSize1GB = 1 << 30

	// MaxInputSize16MB is a conservative input bound.
	MaxInputSize16MB = 16 << 20

	// Unlimited disables an individual limit.
	Unlimited = -1
)

// Limits defines constraints for decoding to prevent resource exhaustion
// from malformed or hostile input.
type Limits struct {
	// MaxDepth is the maximum LIST/COMPOUND nesting depth. The root tag is
	// depth 1.
	MaxDepth int

	// MaxArrayLen is the maximum element count of a BYTE/INT/LONG array.
	MaxArrayLen int

	// MaxListLen is the maximum element count of a LIST.
	MaxListLen int

	// MaxCompoundEntries is the maximum number of entries in one COMPOUND.
	MaxCompoundEntries int

	// MaxInputSize is the maximum size of the uncompressed input in bytes.
	MaxInputSize int
}

// DefaultLimits returns limits suitable for any real-world save file.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:           MaxDepthPractical,
		MaxArrayLen:        MaxArrayLenDefault,
		MaxListLen:         MaxListLenDefault,
		MaxCompoundEntries: MaxCompoundEntriesDefault,
		MaxInputSize:       MaxInputSize1GB,
	}
}

// RelaxedLimits allows deeper nesting and removes the count limits. The
// remaining-bytes check on every count still applies.
func RelaxedLimits() Limits {
	return Limits{
		MaxDepth:           MaxDepthDeep,
		MaxArrayLen:        Unlimited,
		MaxListLen:         Unlimited,
		MaxCompoundEntries: Unlimited,
		MaxInputSize:       Unlimited,
	}
}

// StrictLimits returns conservative limits for untrusted network input.
func StrictLimits() Limits {
	return Limits{
		MaxDepth:           MaxDepthShallow,
		MaxArrayLen:        MaxArrayLenStrict,
		MaxListLen:         MaxListLenStrict,
		MaxCompoundEntries: MaxCompoundEntriesStrict,
		MaxInputSize:       MaxInputSize16MB,
	}
}

// IsZero reports whether l is the zero value (no field set).
func (l Limits) IsZero() bool {
	return l == Limits{}
}

// OrDefault returns l, or DefaultLimits() when l is the zero value.
func (l Limits) OrDefault() Limits {
	if l.IsZero() {
		return DefaultLimits()
	}
	return l
}

// Allows reports whether n is within limit. Zero and negative limits mean
// unlimited, so a partially filled Limits only constrains what it sets.
func Allows(limit, n int) bool {
	return limit <= 0 || n <= limit
}

// Depth returns the effective nesting bound: MaxDepth, or MaxDepthHard when
// MaxDepth is unlimited or larger.
func (l Limits) Depth() int {
	if l.MaxDepth <= 0 || l.MaxDepth > MaxDepthHard {
		return MaxDepthHard
	}
	return l.MaxDepth
}

// ParseLimits maps a preset name to its Limits.
func ParseLimits(name string) (Limits, bool) {
	switch name {
	case "", "default":
		return DefaultLimits(), true
	case "relaxed":
		return RelaxedLimits(), true
	case "strict":
		return StrictLimits(), true
	}
	return Limits{}, false
}
