package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: create_one
description: "Create a single todo"
steps:
  - request:
      method: post
      path: /todos
      body: { title: "Buy milk" }
    expect:
      status: 201
      body: { title: "Buy milk" }
  - request:
      method: GET
      path: /todos
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "create_one", scenario.Name)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "/todos", scenario.Steps[0].Request.Path)
	require.NotNil(t, scenario.Steps[0].Expect)
	assert.Equal(t, 201, scenario.Steps[0].Expect.Status)
	assert.Nil(t, scenario.Steps[1].Expect)
}

func TestLoadScenario_Testdata(t *testing.T) {
	for _, name := range []string{"buy-milk", "validation"} {
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "Has a typo"
steps:
  - request:
      method: GET
      path: /
    expects:
      status: 200
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nsteps:\n  - request: {method: GET, path: /}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nsteps:\n  - request: {method: GET, path: /}\n",
			wantErr: "description is required",
		},
		{
			name:    "no steps",
			content: "name: n\ndescription: d\nsteps: []\n",
			wantErr: "steps list is required",
		},
		{
			name:    "bad method",
			content: "name: n\ndescription: d\nsteps:\n  - request: {method: FETCH, path: /}\n",
			wantErr: `unsupported method "FETCH"`,
		},
		{
			name:    "relative path",
			content: "name: n\ndescription: d\nsteps:\n  - request: {method: GET, path: todos}\n",
			wantErr: "path must start with /",
		},
		{
			name:    "body and raw_body",
			content: "name: n\ndescription: d\nsteps:\n  - request: {method: POST, path: /todos, body: {}, raw_body: x}\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "bad status",
			content: "name: n\ndescription: d\nsteps:\n  - request: {method: GET, path: /}\n    expect: {status: 42}\n",
			wantErr: "not an HTTP status",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
