package config

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/evgeny-myasishchev/finance-tracker/pkg/lib-core-golang/diag"
)

const (
	appEnvVar = "APP_ENV"

	facetVar = "APP_ENV_FACET"

	configDirVar = "APP_CONFIG_DIR"
)

var logger = diag.CreateLogger()

// AppEnv represents app env
type AppEnv struct {
	// ServiceName is a name of a current service
	ServiceName string

	// Name is a env name. By default taken from APP_ENV. Corresponds to NODE_ENV
	Name string

	// Facet is a env facet like preprod (for production). By default taken from APP_ENV_FACET
	Facet string
}

type appEnvCfg struct {
	isTestRun func() bool
}

type appEnvOpt func(*appEnvCfg)

func withTestRunCheck(isTestRun func() bool) appEnvOpt {
	return func(cfg *appEnvCfg) {
		cfg.isTestRun = isTestRun
	}
}

// isTestBinary detects go test. Test flags are registered after package
// vars are initialized, so the binary name is checked as well
func isTestBinary() bool {
	return flag.Lookup("test.v") != nil || strings.HasSuffix(os.Args[0], ".test")
}

// NewAppEnv creates a new instance of the app env from os env
// Will use "dev" by default or "test" when running under go test
func NewAppEnv(serviceName string, opts ...appEnvOpt) AppEnv {
	cfg := appEnvCfg{
		isTestRun: isTestBinary,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	appEnv := os.Getenv(appEnvVar)
	if appEnv == "" {
		if cfg.isTestRun() {
			appEnv = "test"
		} else {
			appEnv = "dev"
		}
	}
	return AppEnv{
		Name:        appEnv,
		Facet:       os.Getenv(facetVar),
		ServiceName: serviceName,
	}
}

// Source is an abstraction to read params
type Source interface {
	GetParameters(ctx context.Context, params []param) (map[param]interface{}, error)
}

// ServiceConfig gives access to loaded param values
type ServiceConfig interface {
	StringParam(p StringParam) StringVal
	IntParam(p IntParam) IntVal
	BoolParam(p BoolParam) BoolVal
}

type serviceConfig struct {
	values map[param]paramValue
}

func (c *serviceConfig) value(p param) paramValue {
	val, ok := c.values[p]
	if !ok {
		panic(errors.Errorf("Parameter %v is not loaded", p))
	}
	return val
}

func (c *serviceConfig) StringParam(p StringParam) StringVal {
	return c.value(p).(StringVal)
}

func (c *serviceConfig) IntParam(p IntParam) IntVal {
	return c.value(p).(IntVal)
}

func (c *serviceConfig) BoolParam(p BoolParam) BoolVal {
	return c.value(p).(BoolVal)
}

type sourceBinding struct {
	params []param
	source Source
}

type loadCfg struct {
	bindings []sourceBinding
}

// ServiceConfigOpt is an option of a Load function
type ServiceConfigOpt func(cfg *loadCfg)

// WithSource will load given params from a given source
func WithSource(binding sourceBinding) ServiceConfigOpt {
	return func(cfg *loadCfg) {
		cfg.bindings = append(cfg.bindings, binding)
	}
}

// Load fetches values of all bound params. Every param must be resolved
// by its source, missing params are reported as errors
func Load(opts ...ServiceConfigOpt) (ServiceConfig, error) {
	cfg := loadCfg{}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := diag.ContextWithRequestID(context.Background(), uuid.NewV4().String())
	logger.Debug(ctx, "Loading config values")

	result := &serviceConfig{values: map[param]paramValue{}}
	for _, binding := range cfg.bindings {
		values, err := binding.source.GetParameters(ctx, binding.params)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to fetch params from source")
		}
		logger.WithData(diag.MsgData{"params": binding.params}).
			Debug(ctx, "Fetched %v (of %v requested) values", len(values), len(binding.params))
		for _, p := range binding.params {
			rawValue, ok := values[p]
			if !ok {
				return nil, errors.Errorf("Parameter %v not found", p)
			}
			val := p.emptyValue()
			if err := val.setValue(rawValue); err != nil {
				return nil, errors.Wrapf(err, "Failed to set parameter %v value", p)
			}
			result.values[p] = val
		}
	}
	return result, nil
}
