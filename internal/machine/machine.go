package machine

import (
	"io"

	"github.com/golang/glog"

	"nesppu/internal/cartridge"
	"nesppu/internal/ppu"
)

// Machine is the single owned aggregate the design notes call for in
// place of a process-wide global: one PPU core, the cartridge that
// backs its bus pages, and the timing/interrupt collaborators a host
// CPU loop would otherwise have to wire up itself.
type Machine struct {
	PPU   *ppu.PPU
	Cart  *cartridge.Cartridge
	Timer *FrameTimer
	NMI   *NMILine
}

// New constructs a Machine with a fresh PPU core wired against its own
// FrameTimer and NMILine, unmapped-bus access logged through glog at
// V(1) (the diagnostic sink is non-fatal by contract: unmapped reads
// return zero and the PPU never surfaces the fault upward).
func New() *Machine {
	timer := NewFrameTimer()
	nmi := NewNMILine()
	core := ppu.New(nmi, timer)
	core.Bus.SetUnmappedLogger(logUnmapped)

	m := &Machine{
		PPU:   core,
		Timer: timer,
		NMI:   nmi,
	}
	timer.SetVBlankHooks(core.EnterVBlank, core.LeaveVBlank)
	return m
}

func logUnmapped(channel string, addr uint16, data *uint8) {
	if data != nil {
		glog.V(1).Infof("%s: unmapped access at %#04x (write %#02x)", channel, addr, *data)
		return
	}
	glog.V(1).Infof("%s: unmapped access at %#04x (read)", channel, addr)
}

// LoadCartridge parses an iNES image from r and installs its CHR and
// nametable pages onto the machine's PPU bus, replacing whatever
// cartridge (if any) was previously installed.
func (m *Machine) LoadCartridge(r io.Reader) error {
	cart, err := cartridge.LoadFromReader(r)
	if err != nil {
		return err
	}
	cart.InstallPPUPages(m.PPU.Bus)
	m.Cart = cart
	glog.Infof("cartridge loaded: mapper=%d mirror=%v", cart.MapperID(), cart.MirrorMode())
	return nil
}

// Step advances the machine by one PPU dot. It is the minimal driver
// loop this core needs to exercise its timing-sensitive rules outside
// of unit tests; a full CPU core would interleave its own instruction
// stepping with calls into m.PPU.ReadRegister/WriteRegister between
// calls to Step.
func (m *Machine) Step() {
	m.Timer.Tick()
}

// Reset forwards to the PPU core's reset, per the hard/soft semantics
// in the register state machine.
func (m *Machine) Reset(hard bool) {
	m.PPU.Reset(hard)
}
