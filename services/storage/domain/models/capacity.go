package models

// CapacityTier distinguishes how an effective capacity value was obtained.
type CapacityTier string

const (
	// CapacityManual means an operator-set limit took precedence.
	CapacityManual CapacityTier = "manual"
	// CapacityCalculated means the value was recursively summed from children.
	CapacityCalculated CapacityTier = "calculated"
	// CapacityUndetermined means not enough data exists to sum; partial sums
	// are never reported as if complete.
	CapacityUndetermined CapacityTier = "undetermined"
)

// Capacity is the effective capacity of a storage node. Value is meaningful
// only when Tier is manual or calculated.
type Capacity struct {
	Tier  CapacityTier
	Value int
}

// ManualCapacity returns an operator-set capacity.
func ManualCapacity(n int) Capacity {
	return Capacity{Tier: CapacityManual, Value: n}
}

// CalculatedCapacity returns a recursively aggregated capacity.
func CalculatedCapacity(n int) Capacity {
	return Capacity{Tier: CapacityCalculated, Value: n}
}

// UndeterminedCapacity marks a node whose capacity cannot be summed.
func UndeterminedCapacity() Capacity {
	return Capacity{Tier: CapacityUndetermined}
}

// Known reports whether the capacity carries a usable numeric value.
func (c Capacity) Known() bool {
	return c.Tier != CapacityUndetermined
}
