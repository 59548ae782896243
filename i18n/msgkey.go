// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"
)

// Translatable is a value that can translate itself using a context.
// Types such as [MsgKey] implement Translatable.
type Translatable interface {
	Tr(ctx context.Context) string
}

// MsgKey is a source text in the default context.
//
// Construct with MsgKey("Success") and call Tr(ctx) to resolve using the
// locale in ctx. Source texts are picked up by "tstool extract".
type MsgKey string

// Tr translates this source text. It is equivalent to calling [Tr] with the
// same text. The ctx may be nil, in which case the base locale is used.
func (s MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(s))
}

// Render writes the translation to w, so a MsgKey can be used as a templ component.
func (s MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, s.Tr(ctx))

	return err
}
