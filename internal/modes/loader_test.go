package modes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadClassifier_PrependsFileRules(t *testing.T) {
	path := writeRules(t, `
rules:
  - mode: debug
    keywords: ["NameError", "exception"]
  - mode: exercise
    keywords: [quiz]
`)
	c, err := LoadClassifier(path)
	require.NoError(t, err)

	assert.Equal(t, Debug, c.Classify("what is a NameError"))
	assert.Equal(t, Exercise, c.Classify("quiz me"))
	assert.Equal(t, Explain, c.Classify("what is a tuple"))
}

func TestLoadClassifier_EmptyPath(t *testing.T) {
	c, err := LoadClassifier("")
	require.NoError(t, err)
	assert.Len(t, c.Rules(), len(DefaultRules()))
}

func TestLoadClassifier_Errors(t *testing.T) {
	_, err := LoadClassifier(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadClassifier(writeRules(t, "rules:\n  - mode: poetry\n    keywords: [rhyme]\n"))
	assert.ErrorContains(t, err, "poetry")

	_, err = LoadClassifier(writeRules(t, "rules:\n  - mode: debug\n"))
	assert.ErrorContains(t, err, "no keywords")

	_, err = LoadClassifier(writeRules(t, "rules: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse rules config")
}
