package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/globalwealth/wealthdash/internal/app"
	_ "github.com/globalwealth/wealthdash/internal/testing/guard"
)

func TestMainReturnsInTestMode(t *testing.T) {
	require.True(t, app.InTestMode())
	require.NotPanics(t, main)
}
