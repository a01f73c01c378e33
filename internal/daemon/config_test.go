package daemon

import (
	"bytes"
	"github.com/icinga/icinga-restquery/pkg/filter"
	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Flags
		wantErr string
	}{
		{"Empty", nil, &Flags{}, ""},
		{"Config", []string{"-c", "/tmp/config.yml"}, &Flags{Config: "/tmp/config.yml"}, ""},
		{
			"OneShotQuery",
			[]string{"--resource", "people", "--query", "age=gte:60", "--listen", ":8080"},
			&Flags{Resource: "people", Query: "age=gte:60", Listen: ":8080"},
			"",
		},
		{"Version", []string{"--version"}, &Flags{Version: true}, ""},
		{"QueryWithoutResource", []string{"-q", "age=1"}, nil, "--query requires --resource"},
		{"UnknownFlag", []string{"--bogus"}, nil, "unknown flag `bogus'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFlags(tt.args)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}

	t.Run("Help", func(t *testing.T) {
		_, err := ParseFlags([]string{"--help"})
		var flagsErr *flags.Error
		require.ErrorAs(t, err, &flagsErr)
		assert.Equal(t, flags.ErrHelp, flagsErr.Type)
	})
}

func TestConfigPath(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	assert.Equal(t, DefaultConfigPath, (&Flags{}).ConfigPath())

	t.Setenv(ConfigEnv, "/from/env.yml")
	assert.Equal(t, "/from/env.yml", (&Flags{}).ConfigPath())
	assert.Equal(t, "/from/flag.yml", (&Flags{Config: "/from/flag.yml"}).ConfigPath())
}

func TestQuery(t *testing.T) {
	sets := map[string]*filter.FilterSet{
		"people": filter.MustNewSet(filter.Fields{"age": filter.Integer()}, filter.Strict()),
	}

	var buf bytes.Buffer
	require.NoError(t, Query(&buf, sets, "people", "age=gte:60&age=lte:69"))
	assert.JSONEq(t, `[
		{"field": "age", "operator": "gte", "value": 60},
		{"field": "age", "operator": "lte", "value": 69}
	]`, buf.String())

	buf.Reset()
	require.NoError(t, Query(&buf, sets, "people", "ghost=1"))
	assert.JSONEq(t, `[]`, buf.String())

	err := Query(&buf, sets, "people", "age=x")
	assert.ErrorIs(t, err, filter.ErrInvalidInteger)
	assert.EqualError(t, err, `cannot parse query for resource "people": field "age": invalid integer value "x"`)

	assert.EqualError(t, Query(&buf, sets, "ghosts", ""), `unknown resource "ghosts"`)
}
