// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"
)

// SortDataset orders the result set in place per the --sort spec: a comma
// separated list of output keys, each optionally prefixed with '-' for
// descending order and '!' for case sensitive comparison. An empty spec
// leaves the dataset untouched.
func SortDataset(dataset []map[string]interface{}, spec string) {
	if spec == "" {
		return
	}

	keys := strings.Split(spec, ",")

	sort.SliceStable(dataset, func(i, j int) bool {
		for _, key := range keys {
			descending := strings.HasPrefix(key, "-")
			key = strings.TrimPrefix(key, "-")

			caseSensitive := strings.HasPrefix(key, "!")
			key = strings.TrimPrefix(key, "!")

			less, equal := compareValues(dataset[i][key], dataset[j][key], caseSensitive)
			if equal {
				continue
			}
			if descending {
				return !less
			}
			return less
		}
		return false
	})
}

// compareValues orders two cell values, numerically when both sides are
// numbers and lexically otherwise.
func compareValues(a, b interface{}, caseSensitive bool) (less bool, equal bool) {
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	if aok && bok {
		return an < bn, an == bn
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}

	return as < bs, as == bs
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
