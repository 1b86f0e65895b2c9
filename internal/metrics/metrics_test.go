/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDecode(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDecode("drivers", ResultOK, time.Millisecond)
	m.ObserveDecode("drivers", ResultOK, time.Millisecond)
	m.ObserveDecode("vehicle", "InsufficientParts", time.Microsecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Decodes.WithLabelValues("drivers", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decodes.WithLabelValues("vehicle", "InsufficientParts")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.DecodeLatency))
}

func TestObserveDecode_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecode("drivers", ResultOK, time.Second)
	})
}
