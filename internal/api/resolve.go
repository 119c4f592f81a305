// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// ResolveProjectID translates a human-readable project name into the
// remote system's canonical identifier with a single read. Opaque IDs pass
// through the same read unchanged; the lookup endpoint accepts either
// form. Failures are returned exactly as the lookup produced them so the
// caller's action stage never runs against a guessed identifier.
func (c *Client) ResolveProjectID(ctx context.Context, nameOrID string) (string, error) {
	doc, err := c.Get(ctx, "/v9/projects/"+url.PathEscape(nameOrID), nil)
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(doc.Bytes(), "id").String()
	if id == "" {
		return "", fmt.Errorf("failed to resolve project %q: response carries no id", nameOrID)
	}

	log.Debugf("resolved project %s -> %s", nameOrID, id)
	return id, nil
}
