// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// Package api is the request builder for the Vercel REST API. It turns a
// method, path, query and body into one authenticated HTTP call and hands
// back the verbatim response payload, or a classified error. The command
// layer owns which call to make; this package owns how calls are made.
package api
