package config

type Warner interface {
	Warnf(format string, a ...interface{})
}

func handleDeprecatedValue(warner Warner, key, value string) {
	warner.Warnf("You are using the deprecated value %q for %s, "+
		"it is replaced by the default value instead", value, key)
}
