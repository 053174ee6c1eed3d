package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"

	"github.com/ymatsepa/banking-system/pkg/lib-core-golang/diag"
)

const appEnvVar = "APP_ENV"

var logger = diag.CreateLogger()

// AppEnv represents app env
type AppEnv struct {
	// ServiceName is a name of a current service
	ServiceName string

	// Name is a env name. By default taken from APP_ENV.
	// Resolves to "test" when running under go test
	Name string
}

// NewAppEnv creates a new instance of the app env from os env
// Will use "dev" by default
func NewAppEnv(serviceName string) AppEnv {
	appEnv := os.Getenv(appEnvVar)
	if appEnv == "" {
		if v := flag.Lookup("test.v"); v == nil {
			appEnv = "dev"
		} else {
			appEnv = "test"
		}
	}
	return AppEnv{
		Name:        appEnv,
		ServiceName: serviceName,
	}
}

// Source is an abstraction to read params
type Source interface {
	GetParameters(params []param) (map[param]interface{}, error)
}

// ServiceConfig holds loaded param values
type ServiceConfig interface {
	StringParam(p StringParam) StringVal
}

type serviceConfig struct {
	values map[param]paramValue
}

func (cfg *serviceConfig) StringParam(p StringParam) StringVal {
	return cfg.values[param(p)].(StringVal)
}

// Load fetches params from the source and binds their values
func Load(source Source, params []param) (ServiceConfig, error) {
	values, err := source.GetParameters(params)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to fetch parameters")
	}
	cfg := &serviceConfig{values: map[param]paramValue{}}
	for _, p := range params {
		value, ok := values[p]
		if !ok {
			return nil, errors.Errorf("Parameter %v not found", p)
		}
		paramVal := p.emptyValue()
		if err := paramVal.setValue(value); err != nil {
			return nil, errors.Wrapf(err, "Failed to set parameter %v value", p)
		}
		cfg.values[p] = paramVal
	}
	return cfg, nil
}
