// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widgets stamps styled content into a grid.Grid.
//
// Every widget renders into a caller-supplied rect and clips to both that
// rect and the grid. Content is truncated, never wrapped.
//
// # Key Types
//
//   - Text, Line, Span: styled multi-line content
//   - Paragraph: renders Text at a rect's origin
//   - Block: a border with an optional title
//   - ReadoutList: aligned key/value rows inside an optional Block
//   - Bar: a fixed-width usage gauge
//   - Palette: rows of terminal color swatches
package widgets
