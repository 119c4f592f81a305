// Copyright (c) 2025 Lobstash.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/Lobstash/vercel-plugin/internal/attrs"
	"github.com/Lobstash/vercel-plugin/internal/config"
	"github.com/Lobstash/vercel-plugin/internal/filters"
)

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of an API response according to command flags and attribute specifications.
// The json (default), raw and yaml formats carry the whole response document;
// table projects the list element named by parent into rows.
func SliceDiceSpit(raw bytes.Buffer,
	al attrs.AttrList,
	cmd *cli.Command,
	parent string,
	w io.Writer,
	conf config.Config) {

	if w == nil {
		w = os.Stdout
	}

	// Deletes and a few other calls answer with an empty body.
	if raw.Len() == 0 {
		return
	}

	switch cmd.String("output") {
	case "raw":
		_, _ = w.Write(raw.Bytes())
		return
	case "yaml":
		spitYAML(raw.Bytes(), w)
		return
	case "table":
	default:
		spitJSON(raw.Bytes(), cmd, w)
		return
	}

	// Just keep the named list element from the document and throw away
	// everything else, notably the pagination block, which we don't have a use
	// case for.
	fullDataset := gjson.Parse(raw.String())
	if parent != "" {
		if sub := fullDataset.Get(parent); sub.Exists() {
			fullDataset = sub
		}
	}

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a
	// smaller dataset.
	filteredDataset := filters.FilterDataset(fullDataset, al, cmd.String("filter"))

	if cmd.Bool("local") {
		for a := range al {
			al[a].TransformSpec += "t"
		}
	}

	// THINK This is inefficient. We're forcing a transformation pass over all
	// attributes, even though many will not carry a spec.
	for _, row := range filteredDataset {
		for _, attr := range al {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(filteredDataset, cmd.String("sort"))

	TableWriter(filteredDataset, al, cmd, w, conf)
}

// spitJSON pretty-prints the raw response, colorized when requested and the
// destination is a terminal.
func spitJSON(raw []byte, cmd *cli.Command, w io.Writer) {
	out := pretty.Pretty(raw)
	if cmd.Bool("color") && isTerminal(w) {
		out = pretty.Color(out, nil)
	}
	_, _ = w.Write(out)
}

// spitYAML re-encodes the raw JSON response as YAML.
func spitYAML(raw []byte, w io.Writer) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Errorf("yaml output: %v", err)
		return
	}

	yamlOutput, err := yaml.Marshal(doc)
	if err != nil {
		log.Errorf("yaml output: %v", err)
		return
	}
	_, _ = w.Write(yamlOutput)
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	al attrs.AttrList,
	cmd *cli.Command,
	w io.Writer,
	conf config.Config) {

	if len(resultSet) == 0 {
		return
	}

	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if cmd.Bool("color") && isTerminal(w) {
		headerColor, evenColor, oddColor := getColors(conf)

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(result))
		for _, attr := range al {
			if !attr.Include {
				continue
			}
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad := conf.GetInt("padding", 2)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if cmd.Bool("titles") {
		var headers []string
		for _, attr := range al {
			if attr.Include {
				headers = append(headers, attr.OutputKey)
			}
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(conf config.Config) (header string, even string, odd string) {
	header = conf.GetString("colors.title", "#f6be00")
	even = conf.GetString("colors.even", "#ffffff")
	odd = conf.GetString("colors.odd", "#00c8f0")
	return
}

// isTerminal reports whether the writer is an interactive terminal. Color is
// suppressed for pipes and files so downstream tooling sees clean bytes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Our current use cases have no use for an actual float, so we're just
		// going to return an integer.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}
