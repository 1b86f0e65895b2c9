/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package render writes decoded records and decoding failures to a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/driverslicense"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/vehicle"
)

var (
	sourceColor = color.New(color.FgHiCyan, color.Bold)
	keyColor    = color.New(color.FgHiWhite)
	valueColor  = color.New(color.FgHiGreen)
	absentColor = color.New(color.FgHiYellow)
	errorColor  = color.New(color.FgHiRed)
)

// Result is the outcome of decoding one input.
type Result struct {
	Source string
	Record interface{}
	Err    error
}

type jsonResult struct {
	Source string                 `json:"source"`
	Record interface{}            `json:"record,omitempty"`
	Error  *licensecode.ErrorBody `json:"error,omitempty"`
}

// JSON writes the result as a single line of JSON.
func JSON(w io.Writer, r Result) error {
	out := jsonResult{Source: r.Source, Record: r.Record}
	if r.Err != nil {
		body := licensecode.NewErrorBody(r.Err)
		out.Error = &body
		out.Record = nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "unable to marshal result")
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

type field struct {
	key   string
	value *string
}

func present(s string) field {
	return field{value: &s}
}

func list(values []string) field {
	return present(strings.Join(values, ", "))
}

func optional(s *string) field {
	return field{value: s}
}

// Pretty writes the result as colored "key: value" lines.
func Pretty(w io.Writer, r Result) error {
	if _, err := sourceColor.Fprintf(w, "%s\n", r.Source); err != nil {
		return err
	}
	if r.Err != nil {
		_, err := errorColor.Fprintf(w, "  error (%s): %v\n", licensecode.KindOf(r.Err), r.Err)
		return err
	}

	fields, err := recordFields(r.Record)
	if err != nil {
		return err
	}

	width := 0
	for _, f := range fields {
		if len(f.key) > width {
			width = len(f.key)
		}
	}
	for _, f := range fields {
		if _, err := keyColor.Fprintf(w, "  %-*s ", width+1, f.key+":"); err != nil {
			return err
		}
		if f.value == nil {
			_, err = absentColor.Fprintln(w, "-")
		} else {
			_, err = valueColor.Fprintln(w, *f.value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func recordFields(record interface{}) ([]field, error) {
	var fields []field
	add := func(key string, f field) {
		f.key = key
		fields = append(fields, f)
	}

	switch rec := record.(type) {
	case *driverslicense.Record:
		add("Vehicle codes", list(rec.VehicleCodes))
		add("Surname", present(rec.Surname))
		add("Initials", present(rec.Initials))
		add("PrDP code", optional(rec.PermitCode))
		add("ID country of issue", present(rec.IDCountryOfIssue))
		add("License country of issue", present(rec.LicenseCountryOfIssue))
		add("Vehicle restrictions", list(rec.VehicleRestrictions))
		add("License number", present(rec.LicenseNumber))
		add("ID number", present(rec.IDNumber))
		add("ID number type", present(rec.IDNumberType))
		add("License code issue dates", list(rec.LicenseCodeIssueDates))
		add("Driver restriction codes", present(rec.DriverRestrictionCodes))
		add("PrDP expiry date", optional(rec.PermitExpiryDate))
		add("License issue number", present(rec.LicenseIssueNumber))
		add("Birthdate", present(rec.Birthdate))
		add("License issue date", present(rec.LicenseIssueDate))
		add("License expiry date", present(rec.LicenseExpiryDate))
		add("Gender", present(rec.Gender))
		add("Image size", present(strconv.Itoa(int(rec.ImageWidth))+"x"+strconv.Itoa(int(rec.ImageHeight))))
	case *vehicle.Record:
		add("Make", present(rec.Make))
		add("Description", present(rec.Description))
		add("Color", present(rec.Color))
		add("License number", present(rec.LicenseNumber))
		add("VIN", present(rec.VINNumber))
		add("Register number", present(rec.VehicleRegisterNumber))
		add("Engine number", present(rec.EngineNumber))
		add("Expiry date", present(rec.ExpiryDate))
	default:
		return nil, errors.Errorf("unsupported record type %T", record)
	}
	return fields, nil
}
