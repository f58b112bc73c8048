package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retrodev/pkg/machine"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

func TestScriptToPNG(t *testing.T) {
	dir := t.TempDir()

	// 1. Write a startup script
	scriptPath := filepath.Join(dir, "hello.lua")
	src := `
		local msg = "HELLO"
		for i = 1, #msg do
			deposit(0xCC00 + i - 1, string.byte(msg, i))
		end
		set("vdm1", "ctrl", "mode1")
	`
	if err := os.WriteFile(scriptPath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	// 2. Run it on a headless machine
	m := machine.New(vdm1.DefaultConfig(), video.NewHeadless())
	pngPath := filepath.Join(dir, "out.png")
	opts := runOptions{script: scriptPath, runFor: 50 * time.Millisecond, png: pngPath}
	if err := runMachine(m, opts); err != nil {
		t.Fatalf("runMachine failed: %v", err)
	}

	// 3. Check the character store
	if got := m.VDM.Text()[:5]; got != "HELLO" {
		t.Errorf("Text: expected HELLO, got %q", got)
	}

	// 4. Decode the PNG
	data, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != vdm1.Width || b.Dy() != vdm1.Height*2 {
		t.Errorf("PNG size: expected %dx%d, got %dx%d", vdm1.Width, vdm1.Height*2, b.Dx(), b.Dy())
	}

	// The 'H' cell has lit pixels; the margin does not.
	lit := 0
	for y := vdm1.Margin * 2; y < (vdm1.Margin+vdm1.CharHeight)*2; y++ {
		for x := vdm1.Margin; x < vdm1.Margin+vdm1.CharWidth; x++ {
			if r, g, _, _ := img.At(x, y).RGBA(); r|g != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected lit pixels in the first cell")
	}
	if _, g, _, _ := img.At(0, 0).RGBA(); g != 0 {
		t.Error("expected dark margin")
	}
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fill.asm")
	src := "        ORG 0\n        MVI A,41H\n        STA 0CC00H\n        HLT\n"
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := defaultOutputPath(in)
	if out != filepath.Join(dir, "fill.bin") {
		t.Errorf("defaultOutputPath: expected fill.bin, got %s", out)
	}

	n, err := assembleFile(in, out)
	if err != nil {
		t.Fatalf("assembleFile failed: %v", err)
	}
	want := []byte{0x3E, 0x41, 0x32, 0x00, 0xCC, 0x76}
	if n != len(want) {
		t.Errorf("assembleFile: expected %d bytes, got %d", len(want), n)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("binary: expected % X, got % X", want, got)
	}

	if _, err := assembleFile(filepath.Join(dir, "missing.asm"), out); err == nil {
		t.Error("missing input: expected error")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"boot.asm", "boot.bin"},
		{"boot", "boot.bin"},
		{filepath.Join("a.b", "prog.s"), filepath.Join("a.b", "prog.bin")},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.in); got != tt.want {
			t.Errorf("defaultOutputPath(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
