package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetRewriteConfig returns the bullet rewrite configuration with global fallbacks applied
func (c *Config) GetRewriteConfig() OperationAIConfig {
	config := c.AI.Rewrite
	c.applyOperationDefaults(&config)

	sys, usr := &config.CustomPrompts.SystemPrompts, &config.CustomPrompts.UserPrompts
	global := c.AI.CustomPrompts
	if sys.RewriteBullet == "" {
		sys.RewriteBullet = global.SystemPrompts.RewriteBullet
	}
	if usr.RewriteBullet == "" {
		usr.RewriteBullet = global.UserPrompts.RewriteBullet
	}
	if sys.RewriteBulletFile == "" {
		sys.RewriteBulletFile = global.SystemPrompts.RewriteBulletFile
	}
	if usr.RewriteBulletFile == "" {
		usr.RewriteBulletFile = global.UserPrompts.RewriteBulletFile
	}
	return config
}

// GetOCRConfig returns the text recognition configuration with global fallbacks applied
func (c *Config) GetOCRConfig() OperationAIConfig {
	config := c.AI.OCR
	c.applyOperationDefaults(&config)

	sys, usr := &config.CustomPrompts.SystemPrompts, &config.CustomPrompts.UserPrompts
	global := c.AI.CustomPrompts
	if sys.RecognizeText == "" {
		sys.RecognizeText = global.SystemPrompts.RecognizeText
	}
	if usr.RecognizeText == "" {
		usr.RecognizeText = global.UserPrompts.RecognizeText
	}
	if sys.RecognizeTextFile == "" {
		sys.RecognizeTextFile = global.SystemPrompts.RecognizeTextFile
	}
	if usr.RecognizeTextFile == "" {
		usr.RecognizeTextFile = global.UserPrompts.RecognizeTextFile
	}
	return config
}
