package config

import (
	"sync"
	"time"
)

type PipelineConfig struct {
	// ConcurrentChecks bounds how many provider calls run at once during a pipeline run.
	// A value of 1 runs the checks one after another.
	ConcurrentChecks int
	AadhaarOTPTTL    time.Duration
}

var (
	pipelineConfig *PipelineConfig
	pipelineOnce   sync.Once
)

func LoadPipelineConfig() *PipelineConfig {
	pipelineOnce.Do(func() {
		e := env()
		pipelineConfig = &PipelineConfig{
			ConcurrentChecks: e.GetInt("PIPELINE_CONCURRENT_CHECKS"),
			AadhaarOTPTTL:    e.GetDuration("AADHAAR_OTP_TTL"),
		}
	})
	return pipelineConfig
}
