// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package driller

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Driller resolves a dotted path against a raw JSON document. It extends
// plain gjson paths in two ways: segments may carry an explicit [N] index,
// and single-element arrays are drilled through so a path like
// "latestDeployments.readyState" works without spelling out the index.
func Driller(json string, path string) gjson.Result {
	result := gjson.Parse(json)

	for _, segment := range strings.Split(path, ".") {
		key, index, hasIndex := splitIndex(segment)

		if key != "" {
			result = result.Get(key)
		}

		if hasIndex {
			arr := result.Array()
			if index < 0 || index >= len(arr) {
				return gjson.Result{}
			}
			result = arr[index]
			continue
		}

		// Collapse single-element arrays so the remaining segments apply to
		// the lone element.
		if result.IsArray() {
			arr := result.Array()
			if len(arr) == 1 {
				result = arr[0]
			}
		}
	}

	return result
}

// splitIndex chops a trailing [N] off a path segment.
func splitIndex(segment string) (string, int, bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 || !strings.HasSuffix(segment, "]") {
		return segment, 0, false
	}

	index, err := strconv.Atoi(segment[open+1 : len(segment)-1])
	if err != nil {
		return segment, 0, false
	}

	return segment[:open], index, true
}
