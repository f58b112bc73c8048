package ka4xx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedWatch(n *NVR, t time.Time) {
	n.Watch().Now = func() time.Time { return t }
}

func TestNVRShiftedAccess(t *testing.T) {
	n := NewNVR()
	pa := uint32(NVRBase + 20*4)

	n.Write(pa, 0x5A<<2)
	if got := n.Read(pa); got != 0x5A<<2 {
		t.Errorf("Read: expected %X, got %X", 0x5A<<2, got)
	}
	if got, _ := n.Examine(20 * 4); got != 0x5A {
		t.Errorf("Examine: expected 5A, got %X", got)
	}
}

func TestNVRByteLane(t *testing.T) {
	n := NewNVR()
	if err := n.Deposit(16*4, 0x11223344); err != nil {
		t.Fatal(err)
	}
	n.Write(NVRBase+16*4+1, 0xAB<<2)
	if got, _ := n.Examine(16 * 4); got != 0x1122AB44 {
		t.Errorf("lane 1 merge: expected 1122AB44, got %08X", got)
	}
}

func TestNVRWatchRegisters(t *testing.T) {
	n := NewNVR()
	fixedWatch(n, time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC))

	tests := []struct {
		rg   int
		want byte
	}{
		{WtcSec, 26},
		{WtcMin, 9},
		{WtcHour, 15},
		{WtcDay, 14},
		{WtcMonth, 3},
		{WtcYear, 26},
		{WtcDow, byte(time.Saturday) + 1},
	}
	for _, tt := range tests {
		if got := n.Read(NVRBase + uint32(tt.rg)*4); got != uint32(tt.want)<<2 {
			t.Errorf("register %d: expected %X, got %X", tt.rg, uint32(tt.want)<<2, got)
		}
	}
}

func TestWatchSetTime(t *testing.T) {
	n := NewNVR()
	fixedWatch(n, time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC))

	n.Write(NVRBase+WtcHour*4, 3<<2)
	n.Write(NVRBase+WtcMin*4, 45<<2)
	w := n.Watch()
	if got := w.Read(WtcHour); got != 3 {
		t.Errorf("hour: expected 3, got %d", got)
	}
	if got := w.Read(WtcMin); got != 45 {
		t.Errorf("minute: expected 45, got %d", got)
	}
	if got := w.Read(WtcDay); got != 14 {
		t.Errorf("day: expected 14 unchanged, got %d", got)
	}

	w.Write(WtcMinAlarm, 30)
	if got := w.Read(WtcMinAlarm); got != 30 {
		t.Errorf("minute alarm: expected 30, got %d", got)
	}
	if got := w.Read(WtcMin); got != 45 {
		t.Errorf("alarm write moved the time: expected 45, got %d", got)
	}
}

func TestWatchCSR(t *testing.T) {
	w := NewWatch()
	w.Write(WtcCSRA, 0xA6)
	if got := w.Read(WtcCSRA); got != 0x26 {
		t.Errorf("CSR A: expected UIP clear 26, got %02X", got)
	}
	w.Write(WtcCSRB, 0x06)
	if got := w.Read(WtcCSRB); got != 0x06 {
		t.Errorf("CSR B: expected 06, got %02X", got)
	}
	if got := w.Read(WtcCSRD); got != 0 {
		t.Errorf("CSR D invalid: expected 0, got %02X", got)
	}
	w.SetValid(true)
	if got := w.Read(WtcCSRD); got != csrdVRT {
		t.Errorf("CSR D valid: expected %02X, got %02X", csrdVRT, got)
	}
}

func TestNVRAttachDetach(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvr.bin")

	n := NewNVR()
	if n.Watch().Valid() {
		t.Error("fresh NVR: expected battery low")
	}
	if err := n.Attach(path); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	if !n.Watch().Valid() {
		t.Error("attached NVR: expected watch chip valid")
	}
	if err := n.Deposit(100*4, 0x77); err != nil {
		t.Fatal(err)
	}
	if err := n.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if n.Watch().Valid() {
		t.Error("detached NVR: expected watch chip invalid")
	}
	if n.Attached() != "" {
		t.Errorf("Attached after detach: expected empty, got %q", n.Attached())
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != NVRSize {
		t.Errorf("file size: expected %d, got %d", NVRSize, info.Size())
	}

	m := NewNVR()
	if err := m.Attach(path); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.Examine(100 * 4); got != 0x77 {
		t.Errorf("reloaded NVR: expected 77, got %X", got)
	}
}

func TestNVRAttachUnreadable(t *testing.T) {
	n := NewNVR()
	err := n.Attach(t.TempDir())
	if err == nil {
		t.Fatal("Attach(directory): expected error")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Errorf("Attach(directory): unexpected not-exist error %v", err)
	}
	if n.Watch().Valid() {
		t.Error("failed attach: expected watch chip invalid")
	}
}
