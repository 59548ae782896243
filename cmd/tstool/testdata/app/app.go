// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package app holds translatable messages for extraction tests.
package app

import (
	"context"

	"codeberg.org/spacetrace/tscatalog/i18n"
)

const dialog = "Dialog"

var menu = []i18n.MsgKey{"Open", "Close"}

type button struct {
	Label i18n.MsgKey
	ID    int
}

var okButton = button{Label: "OK", ID: 1}

func label(k i18n.MsgKey) string { return string(k) }

// Render returns every message in the locale carried by ctx.
func Render(ctx context.Context, name string) []string {
	prefix := "Hello"

	out := []string{
		i18n.Tr(ctx, "Success"),
		i18n.TrC(ctx, dialog, "Browse"),
		i18n.Tr(ctx, prefix+", {}", name),
		i18n.Tr(ctx, "Draw "+"orbit"),
		i18n.TrC(ctx, "Default", "Success"),
		i18n.MsgKey("Cancel").Tr(ctx),
		label("Help"),
		okButton.Label.Tr(ctx),
	}

	for _, k := range menu {
		out = append(out, k.Tr(ctx))
	}

	return out
}
