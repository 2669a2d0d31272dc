package config

import "github.com/xy-planning-network/enumerate"

// An Environment is a different context in which a program using enumerate operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Testing     Environment = "TESTING"
	Staging     Environment = "STAGING"
	Production  Environment = "PRODUCTION"
)

// Environments enumerates every Environment.
var Environments = enumerate.MustNew("environment", []enumerate.Value[Environment]{
	{Key: "development", Code: Development},
	{Key: "testing", Code: Testing},
	{Key: "staging", Code: Staging},
	{Key: "production", Code: Production},
})

func (e Environment) String() string { return string(e) }

// Valid asserts e is one of Environments.
func (e Environment) Valid() error { return Environments.Valid(e) }

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) IsTesting() bool { return e == Testing }
