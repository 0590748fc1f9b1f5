// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersAllCollectors(t *testing.T) {
	require := require.New(t)
	m, err := New(metric.NewRegistry())
	require.NoError(err)
	require.NotNil(m)

	m.IncTick()
	m.IncBatchEmitted()
	m.SetRiskScore(4200)
	m.SetEra(1)
	m.AddDeadLetters(3)
}

func TestNewFailsOnDuplicateRegistration(t *testing.T) {
	require := require.New(t)
	registry := metric.NewRegistry()
	_, err := New(registry)
	require.NoError(err)

	_, err = New(registry)
	require.Error(err)
}
