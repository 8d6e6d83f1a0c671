package config

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/bxcodec/faker/v3"
	"github.com/stretchr/testify/assert"
)

func writeJSONFile(t *testing.T, dir string, name string, value interface{}) {
	buffer, err := json.Marshal(value)
	if err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(path.Join(dir, name), buffer, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewLocalSource(t *testing.T) {
	t.Run("default dir", func(t *testing.T) {
		src, err := NewLocalSource()
		if !assert.NoError(t, err) {
			return
		}
		_, file, _, _ := runtime.Caller(0)
		assert.Equal(t, filepath.Join(file, "..", "..", "..", "..", "config"), src.(*localSource).dir)
	})
	t.Run("dir from env", func(t *testing.T) {
		dir := t.TempDir()
		os.Setenv(configDirVar, dir)
		defer os.Unsetenv(configDirVar)
		src, err := NewLocalSource()
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, dir, src.(*localSource).dir)
	})
	t.Run("invalid overrides file", func(t *testing.T) {
		dir := t.TempDir()
		if err := ioutil.WriteFile(path.Join(dir, "custom-environment-variables.json"), []byte("{"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := NewLocalSource(LocalOpts.WithDir(dir))
		assert.Error(t, err)
	})
}

func TestLocalSource_GetParameters(t *testing.T) {
	configDir := t.TempDir()
	serviceName := "svc-" + faker.Word()
	defaultCfg := map[string]interface{}{
		"key1": "default-key1-" + faker.Word(),
		"key2": "default-key2-" + faker.Word(),
		"deeply": map[string]interface{}{
			"nested": map[string]interface{}{
				"key3": "default-key3-" + faker.Word(),
			},
		},
		"other-svc": map[string]interface{}{
			"key4": "other-svc-key4-" + faker.Word(),
		},
	}
	productionCfg := map[string]interface{}{
		"key2": "production-key2-" + faker.Word(),
	}
	productionPreprodCfg := map[string]interface{}{
		"deeply": map[string]interface{}{
			"nested": map[string]interface{}{
				"key3": "prod-preprod-key3-" + faker.Word(),
			},
		},
	}
	writeJSONFile(t, configDir, "default.json", defaultCfg)
	writeJSONFile(t, configDir, "production.json", productionCfg)
	writeJSONFile(t, configDir, "production-preprod.json", productionPreprodCfg)
	writeJSONFile(t, configDir, "custom-environment-variables.json", map[string]interface{}{
		"key1": "TEST_LOCAL_SOURCE_KEY1",
	})

	key1 := newStringParam("key1", serviceName)
	key2 := newStringParam("key2", serviceName)
	key3 := newStringParam("deeply/nested/key3", serviceName)
	key4 := newStringParam("key4", "other-svc")
	missing := newStringParam("missing-"+faker.Word(), serviceName)
	params := []param{key1, key2, key3, key4, missing}

	type testCase struct {
		name   string
		appEnv AppEnv
		env    map[string]string
		want   map[param]interface{}
	}
	tests := []testCase{
		{
			name:   "default values",
			appEnv: AppEnv{Name: "dev", ServiceName: serviceName},
			want: map[param]interface{}{
				key1: defaultCfg["key1"],
				key2: defaultCfg["key2"],
				key3: pickPath(defaultCfg, "deeply/nested/key3"),
				key4: pickPath(defaultCfg, "other-svc/key4"),
			},
		},
		{
			name:   "env and facet overrides",
			appEnv: AppEnv{Name: "production", Facet: "preprod", ServiceName: serviceName},
			want: map[param]interface{}{
				key1: defaultCfg["key1"],
				key2: productionCfg["key2"],
				key3: pickPath(productionPreprodCfg, "deeply/nested/key3"),
				key4: pickPath(defaultCfg, "other-svc/key4"),
			},
		},
		{
			name:   "env variables overrides",
			appEnv: AppEnv{Name: "dev", ServiceName: serviceName},
			env:    map[string]string{"TEST_LOCAL_SOURCE_KEY1": "env-key1"},
			want: map[param]interface{}{
				key1: "env-key1",
				key2: defaultCfg["key2"],
				key3: pickPath(defaultCfg, "deeply/nested/key3"),
				key4: pickPath(defaultCfg, "other-svc/key4"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}
			src, err := NewLocalSource(
				LocalOpts.WithDir(configDir),
				LocalOpts.WithAppEnv(tt.appEnv),
				LocalOpts.WithIgnoreDefaultService(),
			)
			if !assert.NoError(t, err) {
				return
			}
			got, err := src.GetParameters(context.TODO(), params)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("fail without default config", func(t *testing.T) {
		src, err := NewLocalSource(LocalOpts.WithDir(t.TempDir()))
		if !assert.NoError(t, err) {
			return
		}
		_, err = src.GetParameters(context.TODO(), params)
		assert.Error(t, err)
	})
}
