package game

const (
	// harvestRadius is how close a unit must stand to drain a node.
	harvestRadius = 2.0
	// harvestRate is the amount drained per unit per second.
	harvestRate = 5.0
)

// ResourceNode is a gatherable deposit. A drained node is flagged
// collected and removed at the next cleanup pass, never mid-phase.
type ResourceNode struct {
	pos       Vec3
	amount    float64
	collected bool
}

// drain removes up to want from the node and returns what was actually
// taken. Draining to zero flags the node collected.
func (r *ResourceNode) drain(want float64) float64 {
	if r.collected {
		return 0
	}
	taken := want
	if taken > r.amount {
		taken = r.amount
	}
	r.amount -= taken
	if r.amount <= 0 {
		r.amount = 0
		r.collected = true
	}
	return taken
}

func (r *ResourceNode) Pos() Vec3       { return r.pos }
func (r *ResourceNode) Amount() float64 { return r.amount }
func (r *ResourceNode) Collected() bool { return r.collected }
