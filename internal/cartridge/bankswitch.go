package cartridge

import "nesppu/internal/ppu"

// ChrBankSwitcher models a CNROM-style (mapper 3) cartridge: PRG is
// fixed, but an 8KB-granularity register selects which CHR bank is
// currently visible at $0000-$1FFF. It exists to exercise the
// invariant that a mapper-installed bank swap must be visible on the
// very next PPU bus access, with no special handshake from the core.
type ChrBankSwitcher struct {
	bus     *ppu.Bus
	banks   [][]uint8 // each bank is exactly 8KB (8 pages)
	current int
}

// NewChrBankSwitcher slices chr into 8KB banks and wires it to bus,
// installing bank 0 immediately.
func NewChrBankSwitcher(bus *ppu.Bus, chr []uint8, writable bool) *ChrBankSwitcher {
	const bankSize = 8 * ppu.PageSize
	s := &ChrBankSwitcher{bus: bus}
	for start := 0; start+bankSize <= len(chr); start += bankSize {
		s.banks = append(s.banks, chr[start:start+bankSize])
	}
	if len(s.banks) == 0 {
		s.banks = [][]uint8{make([]uint8, bankSize)}
	}
	s.install(0, writable)
	return s
}

// SelectBank switches the visible CHR bank, as a CPU write to the
// mapper's bank-select register would. The new pages - and their
// pattern caches - are live for the very next PPU access.
func (s *ChrBankSwitcher) SelectBank(bank int, writable bool) {
	s.install(bank%len(s.banks), writable)
}

func (s *ChrBankSwitcher) install(bank int, writable bool) {
	s.current = bank
	data := s.banks[bank]
	tilesPerPage := ppu.PageSize / 16

	for page := 0; page < 8; page++ {
		span := data[page*ppu.PageSize : (page+1)*ppu.PageSize]
		s.bus.InstallReadPage(page, span)
		if writable {
			s.bus.InstallWritePage(page, span)
		} else {
			s.bus.InstallWritePage(page, nil)
		}

		normal := make([]ppu.Tile, tilesPerPage)
		hflip := make([]ppu.Tile, tilesPerPage)
		for i := 0; i < tilesPerPage; i++ {
			tile := span[i*16 : i*16+16]
			normal[i] = ppu.CacheTile(tile)
			hflip[i] = ppu.CacheTileHFlip(tile)
		}
		s.bus.InstallCachePages(page, normal, hflip)
	}
}

// CurrentBank returns the index of the bank currently visible on bus.
func (s *ChrBankSwitcher) CurrentBank() int { return s.current }
