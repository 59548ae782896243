// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Span represents a catalogue file operation in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration

	Op       Operation
	File     string
	Messages int
	Size     int
	Error    error
}

// Operation names what a [Span] does to a file.
type Operation string

// Constants for operations.
const (
	Load  Operation = "load"
	Write Operation = "write"
	Scan  Operation = "scan"
)

// Begin starts timing the span and opens a runtime/trace task for it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "tscatalog."+string(span.Op))

	return ctx
}

// End stops the timer. Calling End more than once has no effect.
func (span *Span) End() {
	if span.task != nil {
		span.duration = time.Since(span.start)
		span.task.End()
		span.task = nil
	}
}

// Duration returns the time between Begin and End.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span at debug level, or at warn level if it failed.
func (span Span) Log() {
	event := log.Debug()
	if span.Error != nil {
		event = log.Warn().Err(span.Error)
	}

	event.
		Str("sys", "tstool").
		Str("file", span.File).
		Int("messages", span.Messages).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Msg(string(span.Op))
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
	bytesInGB = bytesInMB * bytesInKB
)

func humanizeSize(x int) string {
	if x < bytesInKB {
		return strconv.Itoa(x)
	}

	if x < bytesInMB {
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	}

	if x < bytesInGB {
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}

	return fmt.Sprintf("%.2fG", float64(x)/bytesInGB)
}
