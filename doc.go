// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

// vercelctl is a command-line client for the Vercel REST API. It maps shell
// invocations onto API calls for projects, deployments, domains, DNS
// records, environment variables, teams, secrets, certificates, aliases,
// and usage, with shared filtering, sorting, and output shaping.
package main
