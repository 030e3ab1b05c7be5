package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/infra/db/dbtest"
	"github.com/vpvn/bugreports/internal/modules/model"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/modules/service"
	"github.com/vpvn/bugreports/internal/pkg/bugid"
)

func useTestContainer(t *testing.T) *gorm.DB {
	t.Helper()
	gdb := dbtest.New(t)

	cfg := &config.Config{}
	cfg.Root.OperatorTokenPrefix = "br-"
	cfg.Root.SecretPepper = "pepper"

	prev := newContainer
	newContainer = func() *do.Injector {
		inj := do.New()
		do.ProvideValue(inj, cfg)
		do.ProvideValue(inj, service.NewProjectService(repo.NewProjectRepo(gdb)))
		do.ProvideValue(inj, service.NewOperatorService(repo.NewOperatorRepo(gdb), cfg))
		return inj
	}
	t.Cleanup(func() { newContainer = prev })
	return gdb
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBugIDCmd(t *testing.T) {
	out, err := execute(t, "bugid", "test", "Test exception")
	require.NoError(t, err)
	assert.Equal(t, bugid.New("test", "Test exception").String()+"\n", out)

	_, err = execute(t, "bugid", "test")
	assert.Error(t, err)
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []service.CreateProjectInput
		wantErr string
	}{
		{
			name:  "two projects",
			input: "projects:\n  - id: test\n    name: Test buggy project\n  - id: app\n    name: App\n",
			want: []service.CreateProjectInput{
				{ID: "test", Name: "Test buggy project"},
				{ID: "app", Name: "App"},
			},
		},
		{name: "empty file", input: ""},
		{name: "missing id", input: "projects:\n  - name: nameless\n", wantErr: "projects[0]: id is required"},
		{name: "duplicate id", input: "projects:\n  - {id: a, name: A}\n  - {id: a, name: B}\n", wantErr: `duplicate id "a"`},
		{name: "unknown field", input: "projects:\n  - {id: a, name: A, owner: x}\n", wantErr: "parse seed file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeed(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectCmds(t *testing.T) {
	gdb := useTestContainer(t)

	out, err := execute(t, "project", "create", "--id", "test", "--name", "Test buggy project")
	require.NoError(t, err)
	assert.Contains(t, out, `project "test" created`)

	_, err = execute(t, "project", "create", "--id", "test", "--name", "again")
	assert.ErrorIs(t, err, service.ErrConflict)

	seed := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("projects:\n  - {id: test, name: Renamed}\n  - {id: app, name: App}\n"), 0o600))
	out, err = execute(t, "seed", seed)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 projects")

	var p model.Project
	require.NoError(t, gdb.First(&p, "id = ?", "test").Error)
	assert.Equal(t, "Renamed", p.Name)

	out, err = execute(t, "project", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "app")
	assert.Contains(t, out, "Renamed")
}

func TestOperatorCreateCmd(t *testing.T) {
	useTestContainer(t)

	out, err := execute(t, "operator", "create", "--name", "alice", "--admin")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `operator "alice" created`)
	assert.True(t, strings.HasPrefix(lines[1], "br-"))

	out, err = execute(t, "operator", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, lines[1])

	_, err = execute(t, "operator", "create")
	assert.Error(t, err)
}
