/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package driverslicense

import (
	"fmt"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/fieldscan"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/nibble"
)

const (
	// recordMarker precedes the record; fields start 2 bytes after it.
	recordMarker = byte(0x82)
	recordOffset = 2
	// nibbleTerminator ends the nibble-packed section.
	nibbleTerminator = byte(0x57)

	idNumberLen    = 13
	maxVehicleCode = 3
	maxRestriction = 3
	maxIssueDates  = 4
	codeWidth      = 2
	maleCode       = "01"
)

const (
	Male   = "male"
	Female = "female"
)

// Record is a decoded driver's license.
//
// Dates are formatted as "yyyy/mm/dd". Optional fields are nil when absent.
type Record struct {
	VehicleCodes           []string `json:"vehicle_codes"`
	Surname                string   `json:"surname"`
	Initials               string   `json:"initials"`
	PermitCode             *string  `json:"pr_dp_code"`
	IDCountryOfIssue       string   `json:"id_country_of_issue"`
	LicenseCountryOfIssue  string   `json:"license_country_of_issue"`
	VehicleRestrictions    []string `json:"vehicle_restrictions"`
	LicenseNumber          string   `json:"license_number"`
	IDNumber               string   `json:"id_number"`
	IDNumberType           string   `json:"id_number_type"`
	LicenseCodeIssueDates  []string `json:"license_code_issue_dates"`
	DriverRestrictionCodes string   `json:"driver_restriction_codes"`
	PermitExpiryDate       *string  `json:"prd_permit_expiry_date"`
	LicenseIssueNumber     string   `json:"license_issue_number"`
	Birthdate              string   `json:"birthdate"`
	LicenseIssueDate       string   `json:"license_issue_date"`
	LicenseExpiryDate      string   `json:"license_expiry_date"`
	Gender                 string   `json:"gender"`
	ImageWidth             uint8    `json:"image_width"`
	ImageHeight            uint8    `json:"image_height"`
}

// GenderFromCode returns Male for the code "01" and Female for anything else.
func GenderFromCode(code string) string {
	if code == maleCode {
		return Male
	}
	return Female
}

// parseRecord extracts a Record from a decrypted payload. The fields have no
// tags or lengths; they're identified only by the order they're read in.
func parseRecord(data []byte) (*Record, error) {
	r := &Record{}
	s := fieldscan.NewScanner(data)
	s.SeekPast(recordMarker, recordOffset)

	r.VehicleCodes = s.ReadStrings(maxVehicleCode)

	var err error
	if r.Surname, _, err = s.ReadString(); err != nil {
		return nil, malformed("surname", err)
	}

	var delim byte
	if r.Initials, delim, err = s.ReadString(); err != nil {
		return nil, malformed("initials", err)
	}
	if delim == fieldscan.DelimExtra {
		code, _, err := s.ReadString()
		if err != nil {
			return nil, malformed("permit code", err)
		}
		r.PermitCode = &code
	}

	if r.IDCountryOfIssue, _, err = s.ReadString(); err != nil {
		return nil, malformed("ID country of issue", err)
	}
	if r.LicenseCountryOfIssue, _, err = s.ReadString(); err != nil {
		return nil, malformed("license country of issue", err)
	}

	r.VehicleRestrictions = s.ReadStrings(maxRestriction)

	if r.LicenseNumber, _, err = s.ReadString(); err != nil {
		return nil, malformed("license number", err)
	}
	if r.IDNumber, err = s.ReadRaw(idNumberLen); err != nil {
		return nil, malformed("ID number", err)
	}
	idType, err := s.ReadByte()
	if err != nil {
		return nil, malformed("ID number type", err)
	}
	r.IDNumberType = fmt.Sprintf("%02d", idType)

	if err := r.readNibbleFields(nibble.NewQueue(s.ReadUntil(nibbleTerminator))); err != nil {
		return nil, err
	}

	// The image width is the 4th byte after the nibble terminator and the
	// height is the 6th.
	if err := s.Skip(3); err != nil {
		return nil, malformed("image width", err)
	}
	if r.ImageWidth, err = s.ReadByte(); err != nil {
		return nil, malformed("image width", err)
	}
	if err := s.Skip(1); err != nil {
		return nil, malformed("image height", err)
	}
	if r.ImageHeight, err = s.ReadByte(); err != nil {
		return nil, malformed("image height", err)
	}

	return r, nil
}

// readNibbleFields reads the nibble-packed fields, which must appear in exactly
// this order.
func (r *Record) readNibbleFields(q *nibble.Queue) error {
	var err error
	if r.LicenseCodeIssueDates, err = q.ReadDateList(maxIssueDates); err != nil {
		return malformed("license code issue dates", err)
	}
	if r.DriverRestrictionCodes, err = q.ReadCode(codeWidth); err != nil {
		return malformed("driver restriction codes", err)
	}

	expiry, err := q.ReadDate()
	if err != nil {
		return malformed("permit expiry date", err)
	}
	if expiry != "" {
		r.PermitExpiryDate = &expiry
	}

	if r.LicenseIssueNumber, err = q.ReadCode(codeWidth); err != nil {
		return malformed("license issue number", err)
	}
	if r.Birthdate, err = q.ReadDate(); err != nil {
		return malformed("birthdate", err)
	}
	if r.LicenseIssueDate, err = q.ReadDate(); err != nil {
		return malformed("license issue date", err)
	}
	if r.LicenseExpiryDate, err = q.ReadDate(); err != nil {
		return malformed("license expiry date", err)
	}

	gender, err := q.ReadCode(codeWidth)
	if err != nil {
		return malformed("gender", err)
	}
	r.Gender = GenderFromCode(gender)
	return nil
}
