package ka4xx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"retrodev/pkg/logger"
)

const (
	NVRBase = 0x200B8000
	NVRSize = 1 << 10
)

// NVR is the battery backed RAM. Each longword register holds one byte; the
// first 14 registers are the watch chip. The bus sees register values
// shifted left two bits.
type NVR struct {
	data  []uint32
	watch *Watch
	file  string
	Debug bool
}

// NewNVR returns a cleared NVR with a discharged battery: the watch chip is
// invalid until a backing file is attached.
func NewNVR() *NVR {
	return &NVR{
		data:  make([]uint32, NVRSize>>2),
		watch: NewWatch(),
	}
}

// Watch returns the watch chip.
func (n *NVR) Watch() *Watch {
	return n.watch
}

// Read returns the register at physical address pa.
func (n *NVR) Read(pa uint32) uint32 {
	rg := (pa - NVRBase) >> 2
	var val uint32
	if rg < wtcRegs {
		val = uint32(n.watch.Read(int(rg)))
	} else {
		val = n.data[rg&(NVRSize>>2-1)]
	}
	return val << 2
}

// Write stores a bus value at physical address pa.
func (n *NVR) Write(pa, val uint32) {
	rg := (pa - NVRBase) >> 2
	val >>= 2
	if rg < wtcRegs {
		n.watch.Write(int(rg), byte(val))
		if n.Debug {
			logger.Logf("ka4xx", "wtc[%d] <- %02X", rg, byte(val))
		}
		return
	}
	rg &= NVRSize>>2 - 1
	sc := (pa & 3) << 3
	n.data[rg] = (val&0xFF)<<sc | n.data[rg]&^(0xFF<<sc)
}

// Examine returns the register at byte offset addr.
func (n *NVR) Examine(addr uint32) (uint32, error) {
	return examine(n.data, addr, NVRSize)
}

// Deposit stores a register at byte offset addr.
func (n *NVR) Deposit(addr, val uint32) error {
	return deposit(n.data, addr, val, NVRSize)
}

// Attach backs the NVR with a file. An existing file is loaded; a missing
// one is created on Detach. The watch chip becomes valid.
func (n *NVR) Attach(path string) error {
	if n.file != "" {
		if err := n.Detach(); err != nil {
			return err
		}
	}
	buf, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		clear(n.data)
	case err != nil:
		return fmt.Errorf("nvr attach: %w", err)
	default:
		clear(n.data)
		for i := 0; i+4 <= len(buf) && i < NVRSize; i += 4 {
			n.data[i>>2] = binary.LittleEndian.Uint32(buf[i:])
		}
	}
	n.file = path
	n.watch.SetValid(true)
	if n.Debug {
		logger.Logf("ka4xx", "nvr attached to %s", path)
	}
	return nil
}

// Detach writes the NVR back to its file and marks the watch chip invalid.
// Detaching an unattached NVR does nothing.
func (n *NVR) Detach() error {
	if n.file == "" {
		return nil
	}
	buf := make([]byte, NVRSize)
	for i, v := range n.data {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	path := n.file
	n.file = ""
	n.watch.SetValid(false)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("nvr detach: %w", err)
	}
	return nil
}

// Attached returns the backing file, or "" when none.
func (n *NVR) Attached() string {
	return n.file
}
