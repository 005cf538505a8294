package core

// Environment is the deployment environment of the service. It selects the
// logging output format; nothing else branches on it.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment maps the ENVIRONMENT variable onto a known environment.
// Anything unrecognized is treated as Development so a fresh checkout runs
// without configuration.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production, Staging, Testing:
		return Environment(v)
	default:
		return Development
	}
}
