package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// IsEnvironmentTrue treats YES, TRUE and 1 (any case) as true
func IsEnvironmentTrue(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "YES", "TRUE", "1":
		return true
	default:
		return false
	}
}
