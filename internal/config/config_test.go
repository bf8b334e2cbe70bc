package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/argsel/internal/adapters/goanalysis"
	"github.com/corey/argsel/internal/adapters/treesitter"
	"github.com/corey/argsel/internal/domain/argsel"
)

func TestDefault_MatchesBuiltInDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, Checks, c.Checks)
	assert.Equal(t, argsel.DefaultPenaltyThreshold, c.PenaltyThreshold)
	assert.Equal(t, argsel.DefaultLowInformationNames, c.LowInformationNames)
	assert.Equal(t, argsel.DefaultReversalWords, c.ReversalWords)
	assert.Equal(t, argsel.DefaultSyntheticNames.String(), c.SyntheticNames)
	assert.Equal(t, goanalysis.DefaultAssertPackages, c.Assert.GoPackages)
	assert.Equal(t, goanalysis.DefaultAssertFunctions.String(), c.Assert.GoFunctions)
	assert.Equal(t, treesitter.DefaultAssertMethods.String(), c.Assert.JavaMethods)

	goDefaults := goanalysis.DefaultSettings().Engine
	assert.Equal(t, goDefaults.ExpectedPrefixes, c.Assert.ExpectedPrefixes)
	assert.Equal(t, goDefaults.ActualPrefixes, c.Assert.ActualPrefixes)
}

func TestLoad_MissingProjectFileUsesDefaults(t *testing.T) {
	c, err := Load(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ProjectFileMergesOverDefaults(t *testing.T) {
	root := t.TempDir()
	data := []byte("checks: [argselection]\npenalty_threshold: 0.8\nassert:\n  actual_prefixes: [actual]\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), data, 0644))

	c, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), c.Source)
	assert.Equal(t, []string{"argselection"}, c.Checks)
	assert.Equal(t, 0.8, c.PenaltyThreshold)
	assert.Equal(t, []string{"actual"}, c.Assert.ActualPrefixes)

	// untouched keys keep their defaults
	def := Default()
	assert.Equal(t, def.Assert.ExpectedPrefixes, c.Assert.ExpectedPrefixes)
	assert.Equal(t, def.ReversalWords, c.ReversalWords)
	assert.Equal(t, def.Baseline, c.Baseline)

	assert.True(t, c.Enabled(argsel.CheckArgumentSelection))
	assert.False(t, c.Enabled(argsel.CheckStructOrder))
}

func TestParse_EmptyDocument(t *testing.T) {
	c, err := Parse(nil, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default().Checks, c.Checks)

	c, err = Parse([]byte("# only a comment\n"), "comment.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default().Checks, c.Checks)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]struct {
		yaml  string
		field string
	}{
		"unknown key":      {"colour: blue\n", ""},
		"malformed yaml":   {"checks: [argselection\n", ""},
		"unknown check":    {"checks: [argselection, bogus]\n", "checks"},
		"negative penalty": {"penalty_threshold: -1\n", "penalty_threshold"},
		"bad name pattern": {"low_information_names: ['(']\n", "low_information_names"},
		"bad synthetic":    {"synthetic_names: '['\n", "synthetic_names"},
		"bad go functions": {"assert:\n  go_functions: '('\n", "assert.go_functions"},
		"bad java methods": {"assert:\n  java_methods: '('\n", "assert.java_methods"},
		"bad exclude glob": {"exclude: ['[']\n", "exclude"},
		"empty baseline":   {"baseline: ''\n", "baseline"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml), "bad.yaml")
			require.Error(t, err)
			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "bad.yaml", cerr.Source)
			assert.Equal(t, tc.field, cerr.Field)
			assert.Contains(t, err.Error(), "bad.yaml")
		})
	}
}

func TestConfig_Excluded(t *testing.T) {
	c := Default()
	assert.True(t, c.Excluded("pkg/testdata/src/a.go"))
	assert.True(t, c.Excluded("vendor/github.com/x/y.go"))
	assert.True(t, c.Excluded("api/v1/service.pb.go"))
	assert.True(t, c.Excluded(filepath.Join("a", "testdata", "b.java")))
	assert.False(t, c.Excluded("internal/app/runner.go"))
}

func TestConfig_Engine(t *testing.T) {
	c, err := Parse([]byte("penalty_threshold: 0.9\nreversal_words: [mirror]\nsynthetic_names: ''\n"), "x.yaml")
	require.NoError(t, err)

	s := c.Engine()
	assert.Equal(t, 0.9, s.PenaltyThreshold)
	assert.Equal(t, []string{"mirror"}, s.ReversalWords)
	assert.Nil(t, s.SyntheticNames)
	assert.Len(t, s.LowInformationNames, len(c.LowInformationNames))
	assert.Equal(t, []string{"expected", "want"}, s.ExpectedPrefixes)

	assert.True(t, c.GoAssertFunctions().MatchString("Equalf"))
	assert.True(t, c.JavaAssertMethods().MatchString("assertEquals"))
}

func TestConfig_BaselinePath(t *testing.T) {
	c := Default()
	assert.Equal(t, filepath.Join("/src/proj", ".argsel", "baseline.db"), c.BaselinePath("/src/proj"))
	c.Baseline = "/var/lib/argsel.db"
	assert.Equal(t, "/var/lib/argsel.db", c.BaselinePath("/src/proj"))
}

func TestConfig_MarshalRoundTrip(t *testing.T) {
	c := Default()
	data, err := c.Marshal()
	require.NoError(t, err)
	back, err := Parse(data, "")
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
