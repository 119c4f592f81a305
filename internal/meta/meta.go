// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package meta

import (
	"net/http"

	"github.com/Lobstash/vercel-plugin/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
// One value is built at process entry and threaded through the command
// tree via cli.Command Metadata; nothing here is ambient state.
type Meta struct {
	Args   []string
	Config config.Config
	// HTTPClient overrides the transport used for API calls. Tests inject a
	// recording stub; nil selects the default pooled client.
	HTTPClient *http.Client
}
