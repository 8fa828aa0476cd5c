package machine

// NMILine is the concrete ppu.NmiScheduler a machine wires to its CPU
// core. It models the line as level-triggered: SetNMI may be called
// more than once before ClearNMI without implying more than one
// pending interrupt, matching the core's own contract.
type NMILine struct {
	asserted bool
	onAssert func()
}

// NewNMILine returns a line with no CPU callback attached; wire one in
// with OnAssert once the CPU core exists, or leave it nil for headless
// configurations that only care about observing Asserted().
func NewNMILine() *NMILine {
	return &NMILine{}
}

// OnAssert installs the callback invoked on the rising edge (the
// transition from cleared to asserted). The CPU core's instruction loop
// uses this to schedule the NMI service routine on its next boundary.
func (n *NMILine) OnAssert(fn func()) {
	n.onAssert = fn
}

// SetNMI implements ppu.NmiScheduler.
func (n *NMILine) SetNMI() {
	if !n.asserted && n.onAssert != nil {
		n.onAssert()
	}
	n.asserted = true
}

// ClearNMI implements ppu.NmiScheduler.
func (n *NMILine) ClearNMI() {
	n.asserted = false
}

// Asserted reports whether the line is currently held high.
func (n *NMILine) Asserted() bool {
	return n.asserted
}
