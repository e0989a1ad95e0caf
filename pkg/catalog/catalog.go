// Package catalog lists the worksheets shipped with the repository.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/sunfmin/go-debug-worksheets/pkg/advanced"
	"github.com/sunfmin/go-debug-worksheets/pkg/basics"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

var (
	// ErrUnknownSheet is returned by Lookup.
	ErrUnknownSheet = errors.New("unknown worksheet")
	// ErrUnknownSwitch is returned by ValidateEnable.
	ErrUnknownSwitch = errors.New("unknown exercise or path")
)

// All is the Lookup name that selects every sheet.
const All = "all"

// Sheets returns every worksheet in running order.
func Sheets() []worksheet.Sheet {
	return []worksheet.Sheet{basics.Sheet(), advanced.Sheet()}
}

// Names returns the sheet names Lookup accepts, All included.
func Names() []string {
	names := []string{}
	for _, s := range Sheets() {
		names = append(names, s.Name)
	}
	return append(names, All)
}

// Lookup resolves a sheet name, or All, to sheets.
func Lookup(name string) ([]worksheet.Sheet, error) {
	if name == All || name == "" {
		return Sheets(), nil
	}
	for _, s := range Sheets() {
		if s.Name == name {
			return []worksheet.Sheet{s}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownSheet, name, Names())
}

// Switches returns every opt-in name across all sheets, sorted.
func Switches() []string {
	var names []string
	for _, s := range Sheets() {
		names = append(names, s.Switches()...)
	}
	sort.Strings(names)
	return names
}

// ValidateEnable rejects names that no sheet knows about.
func ValidateEnable(enable []string) error {
	known := make(map[string]bool)
	for _, name := range Switches() {
		known[name] = true
	}
	for _, name := range enable {
		if !known[name] {
			return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownSwitch, name, Switches())
		}
	}
	return nil
}
