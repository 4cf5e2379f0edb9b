// Package main provides the coltab CLI: inspect and re-encode Arrow IPC
// files holding ragged columnar data.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/coltab-ml/coltab/backend/webgpu"
	"github.com/coltab-ml/coltab/device"
	"github.com/coltab-ml/coltab/frame"
	"github.com/coltab-ml/coltab/table"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("coltab %s\n", version)
	case "info":
		if len(os.Args) != 3 {
			usage()
			os.Exit(2)
		}
		run(func(logger *zap.Logger) error { return info(logger, os.Args[2]) })
	case "roundtrip":
		if len(os.Args) != 4 {
			usage()
			os.Exit(2)
		}
		run(func(logger *zap.Logger) error { return roundtrip(logger, os.Args[2], os.Args[3]) })
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("coltab - ragged columnar data tool")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                  Show version")
	fmt.Println("  info <file>              Describe the columns of an Arrow IPC file")
	fmt.Println("  roundtrip <in> <out>     Read an Arrow IPC file and re-encode it")
}

func run(f func(*zap.Logger) error) {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "coltab: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // Nothing to do about a failed flush on exit.

	if webgpu.IsAvailable() {
		gpu, gpuErr := webgpu.New()
		if gpuErr != nil {
			logger.Warn("webgpu present but failed to initialize", zap.Error(gpuErr))
		} else {
			defer gpu.Release()
			device.Register(gpu)
			logger.Info("accelerator registered", zap.String("backend", gpu.Name()))
		}
	}

	if err := f(logger); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func readTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return frame.ReadIPC(f)
}

func info(logger *zap.Logger, path string) error {
	t, err := readTable(path)
	if err != nil {
		return err
	}

	logger.Info("loaded table", zap.String("file", path), zap.Int("columns", t.Len()))
	for _, name := range t.Keys() {
		col, err := t.Get(name)
		if err != nil {
			return err
		}
		logger.Info("column",
			zap.String("name", name),
			zap.String("dtype", col.DType().String()),
			zap.Int("rows", col.Len()),
			zap.Bool("list", col.IsList()),
			zap.Bool("ragged", col.IsRagged()),
		)
	}
	return nil
}

func roundtrip(logger *zap.Logger, in, out string) error {
	t, err := readTable(in)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := frame.WriteIPC(f, t); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("re-encoded table",
		zap.String("in", in),
		zap.String("out", out),
		zap.Int("columns", t.Len()),
	)
	return nil
}
