// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/spf13/cobra"

	"github.com/Halo-Labs-xyz/qAegis/internal/adapters"
	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	"github.com/Halo-Labs-xyz/qAegis/internal/controller"
	"github.com/Halo-Labs-xyz/qAegis/internal/metrics"
	"github.com/Halo-Labs-xyz/qAegis/internal/oracle"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
	"github.com/Halo-Labs-xyz/qAegis/internal/sequencer"
)

func newRunCommand(configPath *string) *cobra.Command {
	var tickInterval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the protocol-stack control loop until interrupted",
		RunE: func(*cobra.Command, []string) error {
			return runDaemon(*configPath, tickInterval)
		},
	}
	cmd.Flags().DurationVar(&tickInterval, "tick-interval", time.Second, "wall-clock interval between control ticks in standalone mode")
	return cmd
}

func runDaemon(configPath string, tickInterval time.Duration) error {
	logger := log.Root()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	o, err := oracle.New(logger, cfg.Oracle)
	if err != nil {
		return err
	}
	monitor := qrm.New(logger, cfg.QRM)
	pqc, err := apqc.New(logger, cfg.APQC)
	if err != nil {
		return err
	}

	tee := adapters.NewInMemoryTEE("qaegisd-enclave")
	chain := adapters.NewInMemoryChain(0)
	redundancy := adapters.NewInMemoryRedundancy("qaegisd-redundancy")

	seq, err := sequencer.New(logger, cfg.Sequencer, tee, chain, redundancy, "qaegisd-enclave")
	if err != nil {
		return err
	}

	m, err := metrics.New(metric.NewRegistry())
	if err != nil {
		return err
	}

	ctl := controller.New(logger, cfg.Controller, o, monitor, pqc, seq, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("qaegisd starting", "tickInterval", tickInterval, "algorithmSet", pqc.AlgorithmSetTag())

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var block uint64
	for {
		select {
		case <-ctx.Done():
			logger.Info("qaegisd shutting down")
			return nil
		case <-ticker.C:
			result, err := ctl.Tick(ctx, block)
			if err != nil {
				logger.Error("control tick failed", "block", block, "error", err)
			} else if result.Batch != nil && len(result.Batch.Transactions) > 0 {
				logger.Info("batch emitted",
					"block", block,
					"txCount", len(result.Batch.Transactions),
					"riskScore", result.Assessment.Score,
					"recommendation", result.Assessment.Recommendation.String(),
				)
			}
			block++
		}
	}
}
