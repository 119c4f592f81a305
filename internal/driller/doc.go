// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// Package driller traverses API response documents to extract values for
// output columns and filters.
package driller
