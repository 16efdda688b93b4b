package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalwealth/wealthdash/internal/wealth/ui"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestExecuteMarksNegativeDeltas(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = engine.Execute(&buf, "pages/dashboard.html", TemplateData{
		Title: "Global Wealth Distribution Dashboard",
		Data: ui.DashboardViewModel{
			Header:  ui.Header{Title: "Global Wealth Distribution Dashboard"},
			Metrics: []ui.MetricCard{{Label: "Drop", Value: "1", Delta: "-2%"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "delta-down")
	assert.Contains(t, buf.String(), `<link rel="stylesheet" href="/static/css/dashboard.css">`)
}

func TestExecuteUnknownTemplate(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, engine.Execute(&buf, "pages/missing.html", TemplateData{}))

	var nilEngine *Engine
	assert.Error(t, nilEngine.Execute(&buf, "pages/dashboard.html", TemplateData{}))
}
