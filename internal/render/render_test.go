/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package render

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/driverslicense"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/vehicle"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func vehicleRecord(t *testing.T) *vehicle.Record {
	t.Helper()
	rec, err := vehicle.DecodeString("%MVL1CC29%0159%4025T0HR%1%4025044WR4VP%CSR170W%" +
		"DGX052W%Hatch back / Luikrug%VOLKSWAGEN%POLO VIVO%White / Wit%" +
		"AADZZZ6RZJU061234%CHZ123456%2021-06-30%")
	require.NoError(t, err)
	return rec
}

func TestJSON_Record(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, Result{Source: "car.txt", Record: vehicleRecord(t)}))

	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "car.txt", out["source"])
	assert.NotContains(t, out, "error")

	rec, ok := out["record"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "VOLKSWAGEN POLO VIVO", rec["make"])
	assert.Equal(t, "AADZZZ6RZJU061234", rec["vin_number"])
}

func TestJSON_Error(t *testing.T) {
	_, err := licensecode.Decode(licensecode.DriversLicense, []byte{1, 2, 3})
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, Result{Source: "short.bin", Err: err}))

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotContains(t, out, "record")
	assert.Equal(t, map[string]interface{}{
		"error": "invalid license (insufficient bytes)",
		"kind":  "InsufficientBytes",
	}, out["error"])
}

func TestPretty_Vehicle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, Result{Source: "car.txt", Record: vehicleRecord(t)}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "car.txt", lines[0])
	assert.Equal(t, "  Make:            VOLKSWAGEN POLO VIVO", lines[1])
	assert.Equal(t, "  Expiry date:     2021-06-30", lines[8])
}

func TestPretty_DriversLicense(t *testing.T) {
	rec := &driverslicense.Record{
		VehicleCodes:        []string{"B", "EB"},
		Surname:             "SMITH",
		Initials:            "J",
		VehicleRestrictions: []string{},
		Gender:              driverslicense.Male,
		ImageWidth:          250,
		ImageHeight:         200,
	}

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, Result{Source: "dl.bin", Record: rec}))
	out := buf.String()

	assert.Contains(t, out, "Vehicle codes:")
	assert.Contains(t, out, "B, EB\n")
	assert.Contains(t, out, "250x200\n")
	// absent optional fields
	assert.Contains(t, out, "PrDP code:                -\n")
	assert.Contains(t, out, "PrDP expiry date:         -\n")
}

func TestPretty_Error(t *testing.T) {
	_, err := licensecode.Decode(licensecode.VehicleLicense, []byte("a%b"))
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, Result{Source: "bad.txt", Err: err}))
	assert.Equal(t, "bad.txt\n  error (InsufficientParts): input data does not contain enough parts\n", buf.String())
}

func TestPretty_UnsupportedRecord(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Pretty(&buf, Result{Source: "x", Record: "not a record"}))
}
