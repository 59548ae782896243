// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package translations embeds the Qt Linguist catalogues shipped with the
plugin. Files follow the <domain>_<locale>.ts naming scheme, for example
SpaceTracePlugin_ru.ts.
*/
package translations

import "embed"

// Domain is the file name prefix and default context of the shipped catalogues.
const Domain = "SpaceTracePlugin"

// FS holds the embedded catalogues at its root.
//
//go:embed *.ts
var FS embed.FS
