package vdm1

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// snapshotState is the JSON part of a saved display.
type snapshotState struct {
	DStat   uint8  `json:"dstat"`
	Dirty   bool   `json:"dirty"`
	Blink   bool   `json:"blink"`
	Counter uint16 `json:"counter"`
	Ctrl    string `json:"ctrl"`
	Cursor  string `json:"cursor"`
	Display string `json:"display"`
	MemBase uint16 `json:"mem_base"`
	IOBase  uint8  `json:"io_base"`
}

// Snapshot saves the character store and display state as a zip archive
// holding vdm1_state.json and vram.bin.
func (d *Device) Snapshot() ([]byte, error) {
	d.mu.Lock()
	state := snapshotState{
		DStat:   d.dstat,
		Dirty:   d.dirty,
		Blink:   d.blink,
		Counter: d.counter,
		Ctrl:    d.ctrl.String(),
		Cursor:  d.cursor.String(),
		Display: d.display.String(),
		MemBase: d.memBase,
		IOBase:  d.ioBase,
	}
	vram := d.ram
	d.mu.Unlock()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal vdm1_state: %w", err)
	}
	if err := writeZipEntry(zw, "vdm1_state.json", jsonData); err != nil {
		return nil, err
	}
	if err := writeZipEntry(zw, "vram.bin", vram[:]); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// Restore loads a snapshot. The switch settings are validated before any
// state changes. Base addresses are left alone while the device is active.
func (d *Device) Restore(data []byte) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}

	fileMap := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileMap[f.Name] = f
	}

	jsonData, err := readZipEntry(fileMap, "vdm1_state.json")
	if err != nil {
		return err
	}
	var state snapshotState
	if err := json.Unmarshal(jsonData, &state); err != nil {
		return fmt.Errorf("unmarshal vdm1_state: %w", err)
	}

	vram, err := readZipEntry(fileMap, "vram.bin")
	if err != nil {
		return err
	}
	if len(vram) != MemSize {
		return fmt.Errorf("vram.bin: expected %d bytes, got %d", MemSize, len(vram))
	}

	ctrl, err := ParseCtrl(state.Ctrl)
	if err != nil {
		return fmt.Errorf("snapshot CTRL: %w", err)
	}
	cursor, err := ParseCursor(state.Cursor)
	if err != nil {
		return fmt.Errorf("snapshot CURSOR: %w", err)
	}
	display, err := ParseDisplay(state.Display)
	if err != nil {
		return fmt.Errorf("snapshot DISPLAY: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	copy(d.ram[:], vram)
	d.dstat = state.DStat
	d.blink = state.Blink
	d.counter = state.Counter
	d.ctrl = ctrl
	d.cursor = cursor
	d.display = display
	if !d.active {
		d.memBase = state.MemBase &^ memMask
		d.ioBase = state.IOBase
	}
	d.dirty = true
	return nil
}

// SnapshotToFile writes a snapshot archive to path.
func (d *Device) SnapshotToFile(path string) error {
	data, err := d.Snapshot()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RestoreFromFile restores a snapshot archive read from path.
func (d *Device) RestoreFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return d.Restore(data)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %q: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func readZipEntry(fileMap map[string]*zip.File, name string) ([]byte, error) {
	f, ok := fileMap[name]
	if !ok {
		return nil, fmt.Errorf("zip entry %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
