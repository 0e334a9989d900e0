package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks fills values that depend on other settings or on the host
func (c *Config) applyFallbacks() {
	c.applyServerAPIKeyFallbacks()
	c.applyObservabilityDefaults()

	if c.Server.TLS.Enabled() && c.Server.TLS.MinVersion == "" {
		c.Server.TLS.MinVersion = "1.2"
	}
	if c.AI.Concurrency <= 0 {
		c.AI.Concurrency = 4
	}
}

// applyServerAPIKeyFallbacks splits a comma-separated RESUSCAN_SERVER_APIKEYS
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 1 && strings.Contains(c.Server.APIKeys[0], ",") {
		c.Server.APIKeys = splitList(c.Server.APIKeys[0])
	}
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUSCAN_SERVER_APIKEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = splitList(apiKeysEnv)
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	if c.App.LogLevel != "debug" {
		return
	}

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"RESUSCAN_AI_APIKEY",
		"RESUSCAN_AI_MODEL",
		"RESUSCAN_SERVER_PORT",
		"RESUSCAN_SERVER_HOST",
		"RESUSCAN_SERVER_JWT_SECRET",
		"RESUSCAN_STORAGE_DRIVER",
		"RESUSCAN_STORAGE_DSN",
		"RESUSCAN_APP_LOGLEVEL",
		"RESUSCAN_VAULT_ENABLED",
	}
	for _, envVar := range envVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if isSensitive(envVar) {
			value = "***MASKED***"
		}
		log.Printf("[CONFIG]   %s=%s", envVar, value)
	}

	log.Printf("[CONFIG] AI Provider: %s, Model: %s, API Key set: %t", c.AI.Provider, c.AI.Model, c.AI.APIKey != "")
	log.Printf("[CONFIG] Server: %s (TLS: %t)", c.Addr(), c.Server.TLS.Enabled())
	log.Printf("[CONFIG] Storage driver: %s", c.Storage.Driver)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
}

func isSensitive(name string) bool {
	name = strings.ToLower(name)
	for _, marker := range []string{"key", "secret", "dsn", "token"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
