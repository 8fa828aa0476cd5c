// Package machine aggregates the PPU core with a cartridge and the
// timing/interrupt collaborators the core expects a host to provide:
// a frame timer that advances scanline/cycle/frame the way the
// rasterizer would, and an NMI line that forwards to the CPU core.
// Nothing here is part of the PPU core itself - it is the thinnest
// driver that exercises it end to end.
package machine

import "nesppu/internal/ppu"

// cyclesPerScanline and scanlinesPerFrame describe NTSC timing: 341
// PPU cycles per scanline, 262 scanlines per frame (-1..260, with -1
// as the pre-render line).
const (
	cyclesPerScanline = 341
	scanlinesPerFrame = 262
)

// FrameTimer is the concrete ppu.FrameTimer driving a single machine:
// it owns the scanline/cycle/frame counters and steps them the way a
// rasterizer's per-dot loop would, firing the VBlank-entry and
// VBlank-exit callbacks at the scanlines the PPU core depends on.
type FrameTimer struct {
	scanline int
	cycle    int
	frame    uint64

	onEnterVBlank func()
	onLeaveVBlank func()
}

// NewFrameTimer returns a timer parked at the pre-render line, matching
// the reset state a rasterizer starts from.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{scanline: -1, cycle: 0}
}

// SetVBlankHooks installs the callbacks invoked when the timer crosses
// into scanline 241 (VBlank start) and back to the pre-render line
// (VBlank end). Either may be nil.
func (t *FrameTimer) SetVBlankHooks(onEnter, onLeave func()) {
	t.onEnterVBlank = onEnter
	t.onLeaveVBlank = onLeave
}

// Scanline implements ppu.FrameTimer.
func (t *FrameTimer) Scanline() int { return t.scanline }

// LineCycle implements ppu.FrameTimer.
func (t *FrameTimer) LineCycle() int { return t.cycle }

// Frame implements ppu.FrameTimer.
func (t *FrameTimer) Frame() uint64 { return t.frame }

// Tick advances the timer by one PPU dot, firing the VBlank hooks at
// the scanline boundaries the register suppression rules are keyed on.
// The caller (the machine's step loop) is expected to call Tick before
// handing any queued CPU-side register access to the PPU, per the
// core's ordering contract.
func (t *FrameTimer) Tick() {
	t.cycle++
	if t.cycle >= cyclesPerScanline {
		t.cycle = 0
		t.scanline++
		if t.scanline == 241 && t.onEnterVBlank != nil {
			t.onEnterVBlank()
		}
		if t.scanline >= scanlinesPerFrame-1 {
			t.scanline = -1
			t.frame++
			if t.onLeaveVBlank != nil {
				t.onLeaveVBlank()
			}
		}
	}
}
