package cartridge

import (
	"bytes"
	"testing"

	"nesppu/internal/ppu"
)

const validMagic = "NES\x1A"

func buildHeader(prgBanks, chrBanks, flags6, flags7 uint8) []byte {
	h := make([]byte, 16)
	copy(h[0:4], validMagic)
	h[4] = prgBanks
	h[5] = chrBanks
	h[6] = flags6
	h[7] = flags7
	return h
}

func buildROM(prgBanks, chrBanks uint8, flags6 uint8) []byte {
	rom := buildHeader(prgBanks, chrBanks, flags6, 0)
	rom = append(rom, make([]byte, int(prgBanks)*0x4000)...)
	if chrBanks > 0 {
		chr := make([]byte, int(chrBanks)*0x2000)
		for i := range chr {
			chr[i] = uint8(i)
		}
		rom = append(rom, chr...)
	}
	return rom
}

func TestLoadFromReaderRejectsBadMagic(t *testing.T) {
	bad := buildHeader(1, 1, 0, 0)
	bad[0] = 'X'
	if _, err := LoadFromReader(bytes.NewReader(bad)); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestLoadFromReaderChrRAMWhenNoChrROM(t *testing.T) {
	rom := buildROM(1, 0, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cart.hasCHRRAM {
		t.Fatalf("expected CHR-RAM when header declares 0 CHR banks")
	}
}

func TestInstallPPUPagesExposesCHRROM(t *testing.T) {
	rom := buildROM(1, 1, 0)
	cart, err := LoadFromReader(bytes.NewReader(rom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bus := ppu.NewBus()
	cart.InstallPPUPages(bus)

	if got := bus.Read(0x0005); got != 5 {
		t.Fatalf("bus.Read(0x0005) = %#02x, want 5", got)
	}
	// CHR-ROM: writes must not stick.
	bus.Write(0x0005, 0xFF)
	if got := bus.Read(0x0005); got != 5 {
		t.Fatalf("CHR-ROM write took effect: %#02x", got)
	}
}

func TestInstallPPUPagesDecodesInitialPatternCache(t *testing.T) {
	rom := buildROM(1, 1, 0)
	cart, _ := LoadFromReader(bytes.NewReader(rom))
	bus := ppu.NewBus()
	cart.InstallPPUPages(bus)

	// Tile 0 bytes are 0x00..0x0F; row 0 planes are byte[0]=0x00 and
	// byte[8]=0x08, decode should not panic and should be populated
	// without requiring a prior write.
	if _, _, ok := bus.CacheTileAt(0x0000); !ok {
		t.Fatalf("expected pattern cache to be pre-populated from ROM")
	}
}

func TestHorizontalMirroringSharesNametablesInPairs(t *testing.T) {
	rom := buildROM(1, 1, 0) // flags6 bit0=0 -> horizontal
	cart, _ := LoadFromReader(bytes.NewReader(rom))
	bus := ppu.NewBus()
	cart.InstallPPUPages(bus)

	bus.Write(0x2000, 0x42)
	if got := bus.Read(0x2400); got != 0x42 {
		t.Fatalf("NT1 = %#02x, want mirrored 0x42 from NT0 (horizontal)", got)
	}
	bus.Write(0x2800, 0x55)
	if got := bus.Read(0x2C00); got != 0x55 {
		t.Fatalf("NT3 = %#02x, want mirrored 0x55 from NT2 (horizontal)", got)
	}
	if got := bus.Read(0x2000); got == 0x55 {
		t.Fatalf("NT0 should not share storage with NT2/NT3 under horizontal mirroring")
	}
}

func TestVerticalMirroringSharesNametablesAcrossRows(t *testing.T) {
	rom := buildROM(1, 1, 0x01) // flags6 bit0=1 -> vertical
	cart, _ := LoadFromReader(bytes.NewReader(rom))
	bus := ppu.NewBus()
	cart.InstallPPUPages(bus)

	bus.Write(0x2000, 0x42)
	if got := bus.Read(0x2800); got != 0x42 {
		t.Fatalf("NT2 = %#02x, want mirrored 0x42 from NT0 (vertical)", got)
	}
}

func TestNametableMirrorPagesAlias3000Range(t *testing.T) {
	rom := buildROM(1, 1, 0)
	cart, _ := LoadFromReader(bytes.NewReader(rom))
	bus := ppu.NewBus()
	cart.InstallPPUPages(bus)

	bus.Write(0x2000, 0x7E)
	if got := bus.Read(0x3000); got != 0x7E {
		t.Fatalf("$3000 = %#02x, want mirrored 0x7E from $2000", got)
	}
}

func TestChrBankSwitcherSwapIsVisibleNextAccess(t *testing.T) {
	bus := ppu.NewBus()
	chr := make([]uint8, 2*8*ppu.PageSize)
	chr[0] = 0xAA
	chr[8*ppu.PageSize] = 0xBB

	sw := NewChrBankSwitcher(bus, chr, false)
	if got := bus.Read(0x0000); got != 0xAA {
		t.Fatalf("bank0 byte0 = %#02x, want 0xAA", got)
	}

	sw.SelectBank(1, false)
	if got := bus.Read(0x0000); got != 0xBB {
		t.Fatalf("bank1 byte0 = %#02x, want 0xBB", got)
	}
	if sw.CurrentBank() != 1 {
		t.Fatalf("CurrentBank() = %d, want 1", sw.CurrentBank())
	}
}
