package conf

// Environment environment identifier
type Environment string

const (
	LocalEnvironmentEnum   Environment = "loc"
	MainnetEnvironmentEnum Environment = "mainnet"
	TestnetEnvironmentEnum Environment = "testnet"
	ExampleEnvironmentEnum Environment = "example"
)

// SystemEnvironmentEnum current environment, set from the -env flag at startup
var SystemEnvironmentEnum = MainnetEnvironmentEnum

// GetYaml resolve the configuration file path for the current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./conf/conf_local.yaml"
	case TestnetEnvironmentEnum:
		return "./conf/conf_testnet.yaml"
	case ExampleEnvironmentEnum:
		return "./conf/conf_example.yaml"
	default:
		return "./conf/conf_mainnet.yaml"
	}
}
