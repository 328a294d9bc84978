// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-fin-tracker/internal/config"
	"github.com/MKhiriev/go-fin-tracker/internal/logger"
	"github.com/MKhiriev/go-fin-tracker/models"
)

func TestGetAppVersion_BuildInfo(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.4.0", "2026-03-14", "abc123"), config.App{}, logger.Nop())

	got := svc.GetAppVersion(context.Background())

	assert.Equal(t, models.VersionResponse{Version: "1.4.0", Date: "2026-03-14", Commit: "abc123"}, got)
}

func TestGetAppVersion_ConfiguredVersionWins(t *testing.T) {
	svc := NewAppInfoService(models.NewAppBuildInfo("1.4.0", "", ""), config.App{Version: "v1.2.3-beta+build.42"}, logger.Nop())

	got := svc.GetAppVersion(context.Background())

	assert.Equal(t, "v1.2.3-beta+build.42", got.Version)
	assert.Equal(t, "N/A", got.Date)
	assert.Equal(t, "N/A", got.Commit)
}

func TestGetAppVersion_NothingSet(t *testing.T) {
	svc := NewAppInfoService(models.AppBuildInfo{}, config.App{}, logger.Nop())

	assert.Equal(t, "N/A", svc.GetAppVersion(context.Background()).Version)
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc := NewAppInfoService(models.AppBuildInfo{}, config.App{Version: "1.0.0"}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx).Version)
}
