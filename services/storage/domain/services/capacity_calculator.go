package services

import "github.com/ghuser/cryostore/services/storage/domain/models"

// CapacityOf computes the effective capacity of a node within an eagerly
// loaded subtree.
//
// Tier 1: an operator-set limit > 0 on a device or shelf wins, tagged manual.
// Tier 2: otherwise the capacity is recursively summed from children. A
// box contributes rows × columns, a rack the sum of its boxes, a shelf the
// sum of its racks, a device the sum of its shelves. A node with no children,
// or with any child of undetermined capacity, is itself undetermined: one
// unmeasured leaf makes the whole ancestor chain unknown rather than
// silently wrong.
func CapacityOf(t *models.Subtree, id int64) models.Capacity {
	node := t.Node(id)
	if node == nil {
		return models.UndeterminedCapacity()
	}

	if node.Level.AllowsCapacityOverride() &&
		node.CapacityLimit != nil && *node.CapacityLimit > 0 {
		return models.ManualCapacity(*node.CapacityLimit)
	}

	switch node.Level {
	case models.LevelBox:
		if node.GridRows > 0 && node.GridColumns > 0 {
			return models.CalculatedCapacity(node.GridRows * node.GridColumns)
		}
		return models.UndeterminedCapacity()
	case models.LevelRack, models.LevelShelf, models.LevelDevice:
		return sumChildren(t, id)
	default:
		// Rooms have no defined capacity.
		return models.UndeterminedCapacity()
	}
}

func sumChildren(t *models.Subtree, id int64) models.Capacity {
	children := t.Children(id)
	if len(children) == 0 {
		return models.UndeterminedCapacity()
	}
	total := 0
	for _, child := range children {
		c := CapacityOf(t, child.ID)
		if !c.Known() {
			return models.UndeterminedCapacity()
		}
		total += c.Value
	}
	return models.CalculatedCapacity(total)
}
