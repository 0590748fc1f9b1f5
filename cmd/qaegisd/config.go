// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/spf13/viper"

	apqcconfig "github.com/Halo-Labs-xyz/qAegis/internal/apqc/config"
	"github.com/Halo-Labs-xyz/qAegis/internal/controller"
	"github.com/Halo-Labs-xyz/qAegis/internal/oracle"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
	sequencerconfig "github.com/Halo-Labs-xyz/qAegis/internal/sequencer/config"
)

// daemonConfig is the top-level configuration file format for qaegisd,
// one section per component.
type daemonConfig struct {
	APQC       apqcconfig.Config
	QRM        qrm.Config
	Oracle     oracle.Config
	Sequencer  sequencerconfig.Config
	Controller controller.Config
}

func defaultDaemonConfig() daemonConfig {
	return daemonConfig{
		APQC:       apqcconfig.DefaultConfig(),
		QRM:        qrm.DefaultConfig(),
		Oracle:     oracle.DefaultConfig(),
		Sequencer:  sequencerconfig.DefaultConfig(),
		Controller: controller.DefaultConfig(),
	}
}

// loadConfig reads an optional config file into the defaults, leaving
// every field at its default when path is empty. A path naming a missing or
// unreadable file returns an error.
func loadConfig(path string) (daemonConfig, error) {
	cfg := defaultDaemonConfig()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
