//go:build !js

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"retrodev/pkg/asm"
	"retrodev/pkg/logger"
	"retrodev/pkg/machine"
	"retrodev/pkg/utils"
	"retrodev/pkg/vdm1"
	"retrodev/pkg/video"
)

func main() {
	inPath := flag.String("in", "", "input 8080 assembly file path")
	outPath := flag.String("out", "", "output binary file path (default: input with .bin extension)")
	bootOut := flag.String("boot-out", "", "write the display test boot program to this binary file")
	scriptPath := flag.String("script", "", "Lua startup script run against the machine")
	runFor := flag.Duration("run", 100*time.Millisecond, "simulated time to run after the script")
	pngPath := flag.String("png", "", "render the display to this PNG file")
	snapPath := flag.String("snapshot", "", "save the display state to this file")
	restorePath := flag.String("restore", "", "restore the display state from this file before the script runs")
	showText := flag.Bool("text", false, "print the character store as text")
	debug := flag.String("debug", "", "display debug flags: REG, VIDEO or ALL")
	flag.Parse()

	if *inPath != "" {
		output := *outPath
		if output == "" {
			output = defaultOutputPath(*inPath)
		}
		n, err := assembleFile(*inPath, output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("assembled %d bytes -> %s\n", n, output)
	}

	if *inPath == "" && *bootOut == "" && *scriptPath == "" && *pngPath == "" && *snapPath == "" && !*showText {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to assemble, -boot-out, -script, -png, -snapshot or -text")
		flag.Usage()
		os.Exit(2)
	}

	cfg := vdm1.DefaultConfig()
	flags, err := vdm1.ParseDebug(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-debug: %v\n", err)
		os.Exit(2)
	}
	cfg.Debug = flags
	if flags != 0 {
		logger.SetEcho(os.Stderr)
	}

	m := machine.New(cfg, video.NewHeadless())

	if *bootOut != "" {
		prog, err := m.VDM.BootProgram()
		if err != nil {
			fmt.Fprintf(os.Stderr, "boot program: %v\n", err)
			os.Exit(1)
		}
		if err := writeBinary(*bootOut, prog); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write binary file %q: %v\n", *bootOut, err)
			os.Exit(1)
		}
		fmt.Printf("boot program %d bytes -> %s\n", len(prog), *bootOut)
	}

	if *scriptPath == "" && *pngPath == "" && *snapPath == "" && !*showText {
		return
	}

	opts := runOptions{
		script:  *scriptPath,
		restore: *restorePath,
		runFor:  *runFor,
		png:     *pngPath,
		snap:    *snapPath,
	}
	if err := runMachine(m, opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *showText {
		fmt.Print(m.VDM.Text())
	}
}

type runOptions struct {
	script  string
	restore string
	runFor  time.Duration
	png     string
	snap    string
}

func runMachine(m *machine.Machine, opts runOptions) error {
	if opts.restore != "" {
		if err := m.VDM.RestoreFromFile(opts.restore); err != nil {
			return fmt.Errorf("restore %q: %w", opts.restore, err)
		}
	}
	if err := m.Start(); err != nil {
		return err
	}
	defer m.Stop()

	if opts.script != "" {
		fullPath, _, err := utils.GetPathInfo(opts.script)
		if err != nil {
			return err
		}
		if err := m.RunScript(context.Background(), fullPath); err != nil {
			return err
		}
	}
	if err := m.Sched.Advance(opts.runFor); err != nil {
		return err
	}

	if opts.png != "" {
		if err := m.VDM.SavePNG(opts.png); err != nil {
			return fmt.Errorf("png %q: %w", opts.png, err)
		}
		fmt.Printf("rendered %dx%d -> %s\n", vdm1.Width, vdm1.Height, opts.png)
	}
	if opts.snap != "" {
		if err := m.VDM.SnapshotToFile(opts.snap); err != nil {
			return fmt.Errorf("snapshot %q: %w", opts.snap, err)
		}
		fmt.Printf("snapshot -> %s\n", opts.snap)
	}
	return nil
}

func assembleFile(inPath, outPath string) (int, error) {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}
	code, _, err := asm.Assemble(string(source))
	if err != nil {
		return 0, fmt.Errorf("assembly failed: %w", err)
	}
	if err := writeBinary(outPath, code); err != nil {
		return 0, fmt.Errorf("failed to write binary file %q: %w", outPath, err)
	}
	return len(code), nil
}

func defaultOutputPath(inPath string) string {
	return utils.ReplaceExt(inPath, ".bin")
}

func writeBinary(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
