package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/donaldgifford/collectopedia/internal/api/client"
	domain "github.com/donaldgifford/collectopedia/pkg/types"
)

func TestPrintPriceStats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printPriceStats(&buf, &domain.PriceStats{
		Lowest:      10,
		Median:      22.5,
		Highest:     40,
		ListingType: domain.ListingSold,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "sold")
	assert.Contains(t, out, "22.50")
	assert.NotContains(t, out, "Message:")
	assert.NotContains(t, out, "Error:")
}

func TestPrintPriceStats_Message(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printPriceStats(&buf, &domain.PriceStats{
		ListingType: domain.ListingListed,
		Message:     "No active items found",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No active items found")
}

func TestPrintItemTable(t *testing.T) {
	t.Parallel()

	value := 42
	priced := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)
	items := []domain.Item{
		{
			ID:             "6f1c",
			Name:           "Optimus Prime",
			Region:         domain.RegionUK,
			ListingType:    domain.ListingSold,
			Condition:      domain.ConditionUsed,
			Value:          &value,
			PriceUpdatedAt: &priced,
		},
		{ID: "9a2b", Name: "Megatron", Region: domain.RegionUS, ListingType: domain.ListingListed},
	}

	var buf bytes.Buffer
	require.NoError(t, printItemTable(&buf, items))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Optimus Prime")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "2026-09-01 08:30:00")
	assert.Contains(t, out, "never")
}

func TestPrintQuotaTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := printQuotaTable(&buf, []apiclient.UpstreamQuota{
		{Upstream: "ebay_browse", Limit: 5000, Used: 12, Remaining: 4988},
		{Upstream: "sold", Used: 3, Remaining: -1},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "4988")
	assert.Contains(t, out, "unlimited")
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	v := 7
	assert.Equal(t, "7", formatValue(&v))
	assert.Equal(t, "-", formatValue(nil))
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "x", orDash("x"))
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Grimlo...", truncate("Grimlock Dinobot", 9))
	assert.Equal(t, "ロボット...", truncate("ロボットモード変形", 7))
}
