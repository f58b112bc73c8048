package vdm1

import (
	"errors"
	"strings"
	"testing"
	"time"

	"retrodev/pkg/logger"
	"retrodev/pkg/video"
)

func TestActivateMapsAndSchedules(t *testing.T) {
	r := newRig(t)
	d := r.dev

	if err := d.Activate(); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !d.IsActive() {
		t.Error("IsActive: expected true")
	}

	w, h, ww, wh := r.surface.Size()
	if w != Width || h != Height || ww != Width || wh != Height*2 {
		t.Errorf("surface: expected %dx%d window %dx%d, got %dx%d window %dx%d", Width, Height, Width, Height*2, w, h, ww, wh)
	}
	if r.surface.Title() != "Display" {
		t.Errorf("title: expected Display, got %q", r.surface.Title())
	}
	if r.bus.Mapped(MemBase) != Name || r.bus.Mapped(MemBase+MemSize-1) != Name {
		t.Error("memory: expected CC00-CFFF mapped to the display")
	}
	if r.bus.Mapped(MemBase+MemSize) != "" {
		t.Error("memory: expected D000 unmapped")
	}
	if r.bus.MappedIO(IOBase) != Name {
		t.Error("io: expected port FE mapped to the display")
	}
	if !r.sched.IsActive(d.Unit()) {
		t.Error("scheduler: expected the refresh unit active")
	}

	// bus traffic reaches the device
	r.bus.Write(MemBase+3, 'Z')
	if d.ReadMem(3) != 'Z' {
		t.Errorf("bus write: expected 'Z' in the store, got %02X", d.ReadMem(3))
	}
	if r.bus.In(IOBase) != 0xFF {
		t.Error("bus in: expected 0xFF")
	}
	r.bus.Out(IOBase, 0x21)
	if d.Registers()[0].Value != 0x21 {
		t.Errorf("bus out: expected DSTAT 0x21, got %02X", d.Registers()[0].Value)
	}
}

func TestActivateSurfaceFailure(t *testing.T) {
	r := newRig(t)
	boom := errors.New("no display")
	r.surface.OpenErr = boom

	err := r.dev.Activate()
	if !errors.Is(err, ErrSurface) || !errors.Is(err, boom) {
		t.Fatalf("Activate: expected ErrSurface wrapping %v, got %v", boom, err)
	}
	if r.dev.IsActive() {
		t.Error("IsActive: expected false")
	}
	if r.bus.Mapped(MemBase) != "" || r.bus.MappedIO(IOBase) != "" {
		t.Error("bus: expected nothing mapped")
	}
	if r.sched.Pending() != 0 {
		t.Errorf("scheduler: expected no pending units, got %d", r.sched.Pending())
	}
	if r.dev.Framebuffer() != nil {
		t.Error("framebuffer: expected no allocation")
	}
}

type holder struct{}

func (holder) ReadMem(uint16) byte   { return 0 }
func (holder) WriteMem(uint16, byte) {}

func TestActivateBusConflict(t *testing.T) {
	r := newRig(t)
	if err := r.bus.MapMemory(MemBase, 0x100, holder{}, "ram"); err != nil {
		t.Fatal(err)
	}

	if err := r.dev.Activate(); err == nil {
		t.Fatal("Activate: expected conflict error")
	}
	if r.dev.IsActive() || r.surface.IsOpen() {
		t.Error("expected the device inactive and the window closed")
	}
	if r.sched.Pending() != 0 {
		t.Errorf("scheduler: expected no pending units, got %d", r.sched.Pending())
	}
}

func TestDeactivate(t *testing.T) {
	r := newRig(t)
	d := r.dev
	if err := d.Activate(); err != nil {
		t.Fatal(err)
	}

	if err := d.Deactivate(); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if d.IsActive() || r.surface.IsOpen() {
		t.Error("expected the device inactive and the window closed")
	}
	if r.bus.Mapped(MemBase) != "" || r.bus.MappedIO(IOBase) != "" {
		t.Error("bus: expected nothing mapped")
	}
	if r.sched.IsActive(d.Unit()) {
		t.Error("scheduler: expected the refresh cancelled")
	}

	if err := d.Deactivate(); err != nil {
		t.Errorf("second Deactivate: expected nil, got %v", err)
	}

	// reactivation opens a new window
	if err := d.Activate(); err != nil {
		t.Fatalf("Activate after Deactivate: %v", err)
	}
	if !r.surface.IsOpen() {
		t.Error("expected the window open again")
	}
}

func TestServiceRendersEveryTick(t *testing.T) {
	r := newRig(t)
	d := r.dev
	d.fill('A')
	if err := d.Activate(); err != nil {
		t.Fatal(err)
	}

	if err := r.sched.Advance(firstTick); err != nil {
		t.Fatal(err)
	}
	if _, refreshes := r.surface.Counts(); refreshes != 1 {
		t.Fatalf("after first tick: expected 1 refresh, got %d", refreshes)
	}

	// nothing changes, but every tick still redraws
	if err := r.sched.Advance(5 * DefaultWait); err != nil {
		t.Fatal(err)
	}
	draws, refreshes := r.surface.Counts()
	if draws != 6 || refreshes != 6 {
		t.Errorf("after 6 ticks: expected 6 draws and refreshes, got %d/%d", draws, refreshes)
	}
	if d.Registers()[1].Value != 1 {
		t.Error("DIRTY: expected set after refresh")
	}

	// the frame is drawn at the margin
	bg, fg := d.Palette()
	frame := r.surface.Frame()
	want := expectedCell('A', false, bg, fg)
	for ry := 0; ry < CharHeight; ry++ {
		for rx := 0; rx < CharWidth; rx++ {
			got := frame[(Margin+ry)*Width+Margin+rx]
			if got != want[ry*CharWidth+rx] {
				t.Fatalf("presented pixel (%d,%d): expected %08X, got %08X", rx, ry, want[ry*CharWidth+rx], got)
			}
		}
	}
	for x := 0; x < Width; x++ {
		if frame[x] != 0 {
			t.Fatalf("top margin pixel %d: expected untouched, got %08X", x, frame[x])
		}
	}
}

func TestServiceBlink(t *testing.T) {
	r := newRig(t)
	d := r.dev
	if err := d.Activate(); err != nil {
		t.Fatal(err)
	}
	if err := d.SetCursor("BLINK"); err != nil {
		t.Fatal(err)
	}

	blink := func() uint32 { return d.Registers()[2].Value }

	for i := 1; i <= 9; i++ {
		if err := d.Service(); err != nil {
			t.Fatal(err)
		}
	}
	if blink() != 0 {
		t.Error("after 9 ticks: expected blink phase unchanged")
	}
	if err := d.Service(); err != nil {
		t.Fatal(err)
	}
	if blink() != 1 {
		t.Error("after 10 ticks: expected blink phase toggled")
	}
	for i := 0; i < 10; i++ {
		_ = d.Service()
	}
	if blink() != 0 {
		t.Error("after 20 ticks: expected blink phase toggled back")
	}

	// without BLINK the phase holds
	if err := d.SetCursor("NONE"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		_ = d.Service()
	}
	if blink() != 0 {
		t.Error("CURSOR=NONE: expected blink phase held")
	}
}

func TestServiceReschedules(t *testing.T) {
	r := newRig(t)
	d := r.dev
	if err := d.Activate(); err != nil {
		t.Fatal(err)
	}

	if err := r.sched.Advance(time.Second); err != nil {
		t.Fatal(err)
	}
	// first tick at 25us, then every 25ms
	if _, refreshes := r.surface.Counts(); refreshes != 40 {
		t.Errorf("ticks in one second: expected 40, got %d", refreshes)
	}
	if !r.sched.IsActive(d.Unit()) {
		t.Error("expected the refresh still scheduled")
	}
}

func TestServiceInactiveDoesNotDraw(t *testing.T) {
	r := newRig(t)
	if err := r.dev.Service(); err != nil {
		t.Fatal(err)
	}
	if draws, _ := r.surface.Counts(); draws != 0 {
		t.Errorf("draws while inactive: expected 0, got %d", draws)
	}
}

func TestServiceForwardsOneKeyPerTick(t *testing.T) {
	r := newRig(t)
	d := r.dev
	if err := d.Activate(); err != nil {
		t.Fatal(err)
	}

	var got []byte
	d.SetKeyboardCallback(func(ev video.KeyEvent) error {
		got = append(got, ev.Code)
		return nil
	})
	r.surface.PushKey(video.KeyEvent{Code: 'h', Down: true})
	r.surface.PushKey(video.KeyEvent{Code: 'i', Down: true})

	_ = d.Service()
	if string(got) != "h" {
		t.Errorf("after one tick: expected \"h\", got %q", got)
	}
	_ = d.Service()
	_ = d.Service()
	if string(got) != "hi" {
		t.Errorf("after three ticks: expected \"hi\", got %q", got)
	}
}

func TestServiceWithoutCallbackLeavesKeys(t *testing.T) {
	r := newRig(t)
	if err := r.dev.Activate(); err != nil {
		t.Fatal(err)
	}
	r.surface.PushKey(video.KeyEvent{Code: 'x', Down: true})
	_ = r.dev.Service()
	if _, ok := r.surface.PollKey(); !ok {
		t.Error("expected the key left queued with no callback registered")
	}
}

func TestDebugLogging(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	r := newRig(t)
	r.dev.SetDebug(DebugReg | DebugVideo)
	if err := r.dev.Activate(); err != nil {
		t.Fatal(err)
	}
	r.bus.Out(IOBase, 0x21)
	_ = r.dev.Service()
	_ = r.dev.Service()

	var sb strings.Builder
	logger.Write(&sb)
	out := sb.String()
	for _, want := range []string{"vdm1: window open", "DSTAT=21", "vdm1: refresh (repeat x2)"} {
		if !strings.Contains(out, want) {
			t.Errorf("log: expected %q in\n%s", want, out)
		}
	}
}
