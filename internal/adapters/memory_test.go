// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInMemoryTEEQuoteVerifies(t *testing.T) {
	require := require.New(t)
	tee := NewInMemoryTEE("qaegis-test-enclave")

	var reportData [32]byte
	copy(reportData[:], []byte("report-data-over-canonical-bytes"))

	quote, err := tee.GetQuote(context.Background(), reportData)
	require.NoError(err)

	ok, err := tee.VerifyQuote(context.Background(), quote)
	require.NoError(err)
	require.True(ok)
}

func TestInMemoryChainIncrementsBlockOnSubmit(t *testing.T) {
	require := require.New(t)
	chain := NewInMemoryChain(100)

	block, err := chain.CurrentBlockNumber(context.Background())
	require.NoError(err)
	require.Equal(uint64(100), block)

	require.NoError(chain.SubmitBatch(context.Background(), []byte("canonical"), nil))

	block, err = chain.CurrentBlockNumber(context.Background())
	require.NoError(err)
	require.Equal(uint64(101), block)
	require.Equal(1, chain.BatchCount())
}

func TestInMemoryRedundancyAgreesWithSameReportData(t *testing.T) {
	require := require.New(t)
	tee := NewInMemoryTEE("primary")
	red := NewInMemoryRedundancy("redundancy")

	var reportData [32]byte
	copy(reportData[:], []byte("shared-report-data"))

	primaryQuote, err := tee.GetQuote(context.Background(), reportData)
	require.NoError(err)
	redQuote, err := red.Attest(context.Background(), reportData, "worker-1", "enclave-2")
	require.NoError(err)

	require.NotEqual(primaryQuote, redQuote)
	require.Len(redQuote, 32)
}
