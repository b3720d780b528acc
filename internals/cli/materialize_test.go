package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runMaterializeArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewMaterializeCommand(&RootOptions{Log: zap.NewNop()})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMaterializeCommand_FlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"neither schedule nor all", nil, "at least one of the flags in the group"},
		{"schedule and all together", []string{"--schedule", "3f0c5a4e-0000-4000-8000-000000000001", "--all"}, "none of the others can be"},
		{"strict alone", []string{"--strict"}, "at least one of the flags in the group"},
		{"schedule not a uuid", []string{"--schedule", "bukan-uuid"}, "invalid --schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runMaterializeArgs(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "materialize", "seed"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}
