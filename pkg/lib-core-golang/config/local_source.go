package config

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

const defaultConfigFile = "default.json"

type localSource struct {
	dir                  string
	configFiles          []string
	envOverrides         map[string]interface{}
	defaultService       string
	ignoreDefaultService bool
}

func pickPath(obj interface{}, path string) interface{} {
	val := obj
	for _, part := range strings.Split(path, "/") {
		node, ok := val.(map[string]interface{})
		if !ok {
			return nil
		}
		if val, ok = node[part]; !ok {
			return nil
		}
	}
	return val
}

func (s *localSource) paramPath(p param) string {
	if p.service() == "" {
		return p.key()
	}
	if s.ignoreDefaultService && p.service() == s.defaultService {
		return p.key()
	}
	return p.service() + "/" + p.key()
}

// GetParameters resolves params from config files in order, later files win.
// Non empty env variables listed in custom-environment-variables.json win over files
func (s *localSource) GetParameters(ctx context.Context, params []param) (map[param]interface{}, error) {
	values := map[param]interface{}{}

	for _, configFile := range s.configFiles {
		buffer, err := ioutil.ReadFile(path.Join(s.dir, configFile))
		if err != nil {
			if configFile != defaultConfigFile {
				logger.Debug(ctx, "Skipping config file %v: %v", configFile, err)
				continue
			}
			return nil, errors.Wrapf(err, "Failed to read %v", configFile)
		}
		var configData map[string]interface{}
		if err := json.Unmarshal(buffer, &configData); err != nil {
			return nil, errors.Wrapf(err, "Failed to parse %v", configFile)
		}

		for _, p := range params {
			if paramVal := pickPath(configData, s.paramPath(p)); paramVal != nil {
				values[p] = paramVal
			}
		}
	}

	if s.envOverrides != nil {
		for _, p := range params {
			envName, ok := pickPath(s.envOverrides, s.paramPath(p)).(string)
			if !ok {
				continue
			}
			if envVal := os.Getenv(envName); envVal != "" {
				values[p] = envVal
			}
		}
	}

	return values, nil
}

// LocalOpt is an option of a local config source
type LocalOpt func(s *localSource)

// LocalOpts are options of a local source
var LocalOpts = struct {
	// WithDir option to set local dir to load config from
	WithDir func(dir string) LocalOpt

	// WithIgnoreDefaultService option to skip default service when building param path
	// so params for the default service will be resolved from a root of a config
	WithIgnoreDefaultService func() LocalOpt

	// WithAppEnv option will add env specific config files
	WithAppEnv func(appEnv AppEnv) LocalOpt
}{
	WithDir: func(dir string) LocalOpt {
		return func(s *localSource) {
			s.dir = dir
		}
	},
	WithIgnoreDefaultService: func() LocalOpt {
		return func(s *localSource) {
			s.ignoreDefaultService = true
		}
	},
	WithAppEnv: func(appEnv AppEnv) LocalOpt {
		return func(s *localSource) {
			s.configFiles = append(s.configFiles, appEnv.Name+".json")
			s.defaultService = appEnv.ServiceName
			if appEnv.Facet != "" {
				s.configFiles = append(s.configFiles, appEnv.Name+"-"+appEnv.Facet+".json")
			}
		}
	},
}

func defaultConfigDir() string {
	if dir := os.Getenv(configDirVar); dir != "" {
		return dir
	}
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("Can not resolve config dir")
	}
	return filepath.Join(file, "..", "..", "..", "..", "config")
}

// NewLocalSource creates a source that reads params from a local fs.
// It is similar to node-config, supports json and custom-environment-variables.json
// The dir defaults to APP_CONFIG_DIR or the config dir of the project
func NewLocalSource(opts ...LocalOpt) (Source, error) {
	source := &localSource{
		dir:         defaultConfigDir(),
		configFiles: []string{defaultConfigFile},
	}

	for _, opt := range opts {
		opt(source)
	}

	overridesFilePath := path.Join(source.dir, "custom-environment-variables.json")
	if overridesBuffer, err := ioutil.ReadFile(overridesFilePath); err == nil {
		envOverrides := map[string]interface{}{}
		if err := json.Unmarshal(overridesBuffer, &envOverrides); err != nil {
			return nil, errors.Wrap(err, "Failed to parse custom-environment-variables.json")
		}
		source.envOverrides = envOverrides
	}

	return source, nil
}
