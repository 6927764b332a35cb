package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"work-manifest/core/internal/builder"
	"work-manifest/core/internal/store"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, parts ...string) {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
}

func TestGenerate_Scenario(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "WORK_DISPLAY", "A", "DISPLAY_IMAGE", "x.png")
	writeFile(t, project, "WORK_DISPLAY", "B", "CAD_MODEL", "scene.gltf")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "WORK_DISPLAY", "C"), 0o755))

	stdout, stderr, err := execute(t, "--project", project, "--log-json")
	require.NoError(t, err)
	assert.Equal(t, ExitOK, ExitCode(err))
	assert.Contains(t, stdout, "items=2 skipped=1 changed=true")
	assert.Contains(t, stderr, `"name":"C"`)

	m, err := store.Read(filepath.Join(project, "WORK_DISPLAY", "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, []store.Item{
		{Name: "A", Path: "WORK_DISPLAY/A/DISPLAY_IMAGE/x.png"},
		{Name: "B", Path: "WORK_DISPLAY/B/CAD_MODEL/scene.gltf"},
	}, m.Items)

	stdout, _, err = execute(t, "generate", "--project", project)
	require.NoError(t, err)
	assert.Contains(t, stdout, "changed=false")
}

func TestGenerate_MissingRoot(t *testing.T) {
	project := t.TempDir()

	_, _, err := execute(t, "--project", project)
	require.Error(t, err)
	assert.Equal(t, ExitRootMissing, ExitCode(err))

	entries, err := os.ReadDir(project)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_WriteFailure(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "WORK_DISPLAY", "A", "DISPLAY_IMAGE", "x.png")
	require.NoError(t, os.MkdirAll(filepath.Join(project, "WORK_DISPLAY", "manifest.json", "occupied"), 0o755))

	_, _, err := execute(t, "--project", project)
	require.Error(t, err)
	assert.Equal(t, ExitWriteFailed, ExitCode(err))
}

func TestGenerate_ConfigFile(t *testing.T) {
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, "work-manifest.yaml"),
		[]byte("root_dir: SHOWCASE\nmodel_dir: MODELS\n"), 0o644))
	writeFile(t, project, "SHOWCASE", "Chair", "MODELS", "chair.glb")

	_, _, err := execute(t, "--project", project)
	require.NoError(t, err)

	m, err := store.Read(filepath.Join(project, "SHOWCASE", "manifest.json"))
	require.NoError(t, err)
	assert.Equal(t, []store.Item{{Name: "Chair", Path: "SHOWCASE/Chair/MODELS/chair.glb"}}, m.Items)
}

func TestGenerate_BadConfig(t *testing.T) {
	project := t.TempDir()

	t.Run("explicit file missing", func(t *testing.T) {
		_, _, err := execute(t, "--project", project, "--config", filepath.Join(project, "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "c.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("max_depth: -2\n"), 0o644))
		_, _, err := execute(t, "--project", project, "--config", cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_depth")
		assert.Equal(t, ExitFailure, ExitCode(err))
	})

	t.Run("bad log level flag", func(t *testing.T) {
		_, _, err := execute(t, "--project", project, "--log-level", "shout")
		require.Error(t, err)
		assert.Equal(t, ExitFailure, ExitCode(err))
	})
}

func TestCheck(t *testing.T) {
	project := t.TempDir()
	writeFile(t, project, "WORK_DISPLAY", "A", "DISPLAY_IMAGE", "x.png")
	writeFile(t, project, "WORK_DISPLAY", "B", "CAD_MODEL", "scene.gltf")

	_, _, err := execute(t, "--project", project)
	require.NoError(t, err)

	stdout, _, err := execute(t, "check", "--project", project)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok items=2")

	require.NoError(t, os.Remove(filepath.Join(project, "WORK_DISPLAY", "B", "CAD_MODEL", "scene.gltf")))
	stdout, _, err = execute(t, "check", "--project", project)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stdout, "WORK_DISPLAY/B/CAD_MODEL/scene.gltf\tmissing file")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: nil, want: ExitOK},
		{err: errors.New("boom"), want: ExitFailure},
		{err: fmt.Errorf("%w: /x", builder.ErrRootMissing), want: ExitRootMissing},
		{err: fmt.Errorf("%w /x: %w", builder.ErrWriteManifest, os.ErrPermission), want: ExitWriteFailed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev (")
}
