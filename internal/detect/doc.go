// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detect finds the system's graphics adapter for the gpu readout.
//
// Vendor tools are tried in order and the first one that answers wins:
//   - NVIDIA (nvidia-smi)
//   - AMD (rocm-smi)
//   - Apple Silicon (system_profiler on macOS)
//   - Any PCI display controller (lspci on Linux)
//   - Intel Arc (intel_gpu_top)
//
// # Usage
//
//	d := detect.New()
//	gpu, err := d.Detect(ctx)
//	if errors.Is(err, detect.ErrNoGPU) {
//		// no adapter reported by any tool
//	}
//	fmt.Println(gpu)
package detect
