//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir  string // CARDKIT_HOME, holds config.yaml
	CardsDir string // card documents written by the test
}

// setupTestEnv creates isolated temp directories and points CARDKIT_HOME at
// one of them so config reads and writes are sandboxed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:  t.TempDir(),
		CardsDir: t.TempDir(),
	}
	t.Setenv("CARDKIT_HOME", env.HomeDir)

	viper.Reset()
	t.Cleanup(viper.Reset)
	return env
}

// writeCard writes a card document into the cards dir and returns its path.
func writeCard(t *testing.T, env *testEnv, name, content string) string {
	t.Helper()
	path := filepath.Join(env.CardsDir, name)
	writeFile(t, path, content)
	return path
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

const sampleCard = `{
	"type": "AdaptiveCard",
	"version": "1.2",
	"body": [
		{ "type": "TextBlock", "id": "title", "text": "Order shipped" },
		{
			"type": "Container",
			"items": [
				{ "type": "Map.Pin", "id": "pin", "lat": 51.5, "lon": -0.12 },
				{ "type": "Table", "id": "lines" }
			]
		}
	],
	"actions": [
		{ "type": "Action.OpenUrl", "title": "Track", "url": "https://example.com/t/1" },
		{ "type": "Action.ToggleVisibility", "title": "Details", "targetElements": ["lines"] }
	]
}
`
