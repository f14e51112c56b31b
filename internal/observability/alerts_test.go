package observability

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Groups []struct {
		Name  string `yaml:"name"`
		Rules []struct {
			Alert       string            `yaml:"alert"`
			Expr        string            `yaml:"expr"`
			For         string            `yaml:"for"`
			Labels      map[string]string `yaml:"labels"`
			Annotations map[string]string `yaml:"annotations"`
		} `yaml:"rules"`
	} `yaml:"groups"`
}

// exportedFamilies returns the metric names a scrape shows once every
// collector has seen one sample.
func exportedFamilies(t *testing.T) []string {
	t.Helper()
	m := NewMetrics()
	m.ObserveUpstream(http.MethodGet, "products", 0, 0)
	m.Middleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	families, err := m.registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	return names
}

func TestDashboardAlertRules(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "deploy", "prometheus", "alerts", "dashboard.yml"))
	require.NoError(t, err)

	var file ruleFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.Len(t, file.Groups, 1)
	group := file.Groups[0]
	assert.Equal(t, "dashboard", group.Name)

	want := map[string]string{
		"HighErrorRate":      "critical",
		"HighLatency":        "warning",
		"BackendUnreachable": "critical",
	}
	runbook, err := os.ReadFile(filepath.Join("..", "..", "docs", "runbook.md"))
	require.NoError(t, err)
	families := exportedFamilies(t)

	require.Len(t, group.Rules, len(want))
	for _, rule := range group.Rules {
		severity, ok := want[rule.Alert]
		require.True(t, ok, "unexpected rule %q", rule.Alert)
		assert.Equal(t, severity, rule.Labels["severity"], rule.Alert)
		assert.NotEmpty(t, rule.For, rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], rule.Alert)

		anchor, found := strings.CutPrefix(rule.Annotations["runbook"], "docs/runbook.md#")
		require.True(t, found, rule.Alert)
		assert.Contains(t, strings.ToLower(string(runbook)), "## "+strings.ReplaceAll(anchor, "-", " "), rule.Alert)

		referenced := false
		for _, name := range families {
			if strings.Contains(rule.Expr, name) {
				referenced = true
			}
		}
		assert.True(t, referenced, "rule %s queries no exported metric", rule.Alert)
	}
}
