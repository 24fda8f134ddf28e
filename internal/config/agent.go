package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	defaultAgentName = "vibematch"
	defaultModelName = "gpt-4o"
)

// AgentEnv maps go-agents config fields to environment variable names.
// Token, deployment, API version, and auth type land in provider options.
type AgentEnv struct {
	Name         string
	ProviderName string
	BaseURL      string
	ModelName    string
	Token        string
	Deployment   string
	APIVersion   string
	AuthType     string
}

var agentEnv = &AgentEnv{
	Name:         "VIBEMATCH_AGENT_NAME",
	ProviderName: "VIBEMATCH_AGENT_PROVIDER_NAME",
	BaseURL:      "VIBEMATCH_AGENT_BASE_URL",
	ModelName:    "VIBEMATCH_AGENT_MODEL_NAME",
	Token:        "VIBEMATCH_AGENT_TOKEN",
	Deployment:   "VIBEMATCH_AGENT_DEPLOYMENT",
	APIVersion:   "VIBEMATCH_AGENT_API_VERSION",
	AuthType:     "VIBEMATCH_AGENT_AUTH_TYPE",
}

// FinalizeAgent applies defaults from go-agents DefaultAgentConfig, the
// VIBEMATCH_AGENT_* overrides, and validation to c.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c, agentEnv)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	if c.Name == "" {
		c.Name = defaultAgentName
	}
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if c.Model.Name == "" {
		c.Model.Name = defaultModelName
	}
}

func loadAgentEnv(c *gaconfig.AgentConfig, env *AgentEnv) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(env.Name); v != "" {
		c.Name = v
	}
	if v := os.Getenv(env.ProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(env.BaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(env.ModelName); v != "" {
		c.Model.Name = v
	}

	options := map[string]string{
		env.Token:      "token",
		env.Deployment: "deployment",
		env.APIVersion: "api_version",
		env.AuthType:   "auth_type",
	}
	for envVar, key := range options {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil || c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil || c.Model.Name == "" {
		return fmt.Errorf("model name required")
	}
	return nil
}
