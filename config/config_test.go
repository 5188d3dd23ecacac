package config

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/activecm/wfpreprocess/pkg/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
	Inner             TestStructInner
}

type TestStructInner struct {
	InertString       string
	ExpandString      string
	ExpandStringSlice []string
}

func TestExpandConfig(t *testing.T) {
	inert := "DO_NOT_CHANGE"
	outerEnvVarName := "_OUTER_ENV_VAR"
	outerEnvVarValue := "OUTER_VALUE"
	innerEnvVarName := "_INNER_ENV_VAR"
	innerEnvVarValue := "INNER_VALUE"
	test := TestStruct{
		InertString:       inert,
		ExpandString:      "$" + outerEnvVarName,
		ExpandStringSlice: []string{"$" + outerEnvVarName, inert},
	}
	innerStruct := TestStructInner{
		InertString:       inert,
		ExpandString:      "$" + innerEnvVarName,
		ExpandStringSlice: []string{"$" + innerEnvVarName, inert},
	}
	test.Inner = innerStruct

	os.Setenv(outerEnvVarName, outerEnvVarValue)
	os.Setenv(innerEnvVarName, innerEnvVarValue)
	assert.Equal(t, outerEnvVarValue, os.ExpandEnv("$"+outerEnvVarName))
	assert.Equal(t, innerEnvVarValue, os.ExpandEnv("$"+innerEnvVarName))
	expandConfig(reflect.ValueOf(&test).Elem())

	assert.Equal(t, inert, test.InertString)
	assert.Equal(t, outerEnvVarValue, test.ExpandString)
	assert.Equal(t, innerEnvVarValue, test.Inner.ExpandString)
	os.Unsetenv(outerEnvVarName)
	os.Unsetenv(innerEnvVarName)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(staticConfigParserTestConfig), 0644))

	conf, err := GetConfig(path)
	require.NoError(t, err)
	assert.Equal(t, testConfigFullExp, conf.S)
	assert.Equal(t, 4, conf.R.Threads)
	assert.True(t, conf.R.Features.Enabled[features.NGramBlock])
	assert.False(t, conf.R.Features.Enabled[features.RFAttack])
	assert.Equal(t, 10, conf.R.Features.Params.BinWidth)

	_, err = GetConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultConfig(t *testing.T) {
	conf, err := LoadDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), conf.R.Threads)
	assert.Len(t, features.Layout(conf.R.Features), 8, "every attack is on by default")
}

func TestInvalidParameters(t *testing.T) {
	testCases := []struct {
		yaml string
		msg  string
	}{
		{"Parameters:\n    BinWidth: 0\n", "zero bin width"},
		{"Parameters:\n    Padded: -2\n", "negative padding"},
		{"Parameters:\n    HowLong: 0\n", "zero horizon"},
		{"Parameters:\n    FeatureCount: 0\n", "zero feature count"},
		{"Parameters:\n    NGram: 0\n", "zero n-gram order"},
		{"Extract:\n    Threads: -1\n", "negative threads"},
		{"LogConfig:\n    LogLevel: 7\n", "log level out of range"},
		{"Extract:\n    FeatureExtension: .cell\n", "features would overwrite traces"},
	}
	for _, test := range testCases {
		_, err := loadConfig([]byte(test.yaml))
		assert.True(t, errors.Is(err, ErrInvalidParameter), test.msg)
	}

	_, err := loadConfig([]byte("Parameters:\n    BinWidth: 0\n"))
	assert.True(t, errors.Is(err, features.ErrInvalidOption), "feature option errors stay visible")
}

func TestRefresh(t *testing.T) {
	conf, err := LoadTestingConfig()
	require.NoError(t, err)
	assert.Equal(t, 2, conf.R.Threads)

	conf.S.Extract.Threads = 3
	conf.S.Blocks.NGram = true
	require.NoError(t, conf.Refresh())
	assert.Equal(t, 3, conf.R.Threads)
	assert.True(t, conf.R.Features.Enabled[features.NGramBlock])

	conf.S.Parameters.BinWidth = 0
	assert.Error(t, conf.Refresh())
}
