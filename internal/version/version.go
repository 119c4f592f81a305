// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package version

// Version is the release identifier stamped in by the build via
// -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
