package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhindi/internal/events"
)

func newTestIntegrationService(t *testing.T) IntegrationService {
	t.Helper()
	svc := NewIntegrationService()
	require.NoError(t, svc.Startup(context.Background()))
	return svc
}

func TestIntegrationService_CatalogStats(t *testing.T) {
	svc := newTestIntegrationService(t)

	stats := svc.Stats()
	assert.Equal(t, 14, stats.Total)
	assert.Equal(t, 4, stats.Connected)
	assert.Equal(t, 4, stats.Free)
	assert.Equal(t, 10, svc.ComingSoonCount())

	cats := svc.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "all", cats[0].Key)
}

func TestIntegrationService_ListFilters(t *testing.T) {
	svc := newTestIntegrationService(t)

	assert.Len(t, svc.List("", ""), 14)
	assert.Len(t, svc.List("all", ""), 14)
	assert.Len(t, svc.List("communication", ""), 2)
	assert.Len(t, svc.List("finance", ""), 1)

	got := svc.List("", "GOOGLE")
	require.Len(t, got, 2)
	assert.Equal(t, "google-calendar", got[0].ID)
	assert.Equal(t, "google-drive", got[1].ID)

	assert.Len(t, svc.List("productivity", "real-time"), 1)
	assert.Empty(t, svc.List("social", "gmail"))
}

func TestIntegrationService_Connect(t *testing.T) {
	notes := captureEvents(t)
	svc := newTestIntegrationService(t)

	res, err := svc.Connect("web-search")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Web Search is already connected!", res.Message)

	res, err = svc.Connect("slack")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "This integration is coming soon!", res.Message)

	_, err = svc.Connect("fax")
	assert.ErrorIs(t, err, ErrIntegrationNotFound)

	got := notes()
	require.Len(t, got, 2)
	assert.Equal(t, events.EventSuccess, got[0].Type)
	assert.Equal(t, events.EventError, got[1].Type)
}
