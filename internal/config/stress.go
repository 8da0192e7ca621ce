// Stress configuration - load-test harness settings.
package config

import "fmt"

// StressConfig sizes one run of the load-test harness.
type StressConfig struct {
	Writers    int    `yaml:"writers"`    // Goroutines recording values
	Iterations int    `yaml:"iterations"` // Writes per writer
	Resetters  int    `yaml:"resetters"`  // Goroutines draining with snapshot-and-reset
	Readers    int    `yaml:"readers"`    // Goroutines taking plain snapshots
	Name       string `yaml:"name"`       // Metric name the writers share
}

// Validate checks the harness settings.
func (s StressConfig) Validate() error {
	if s.Writers <= 0 {
		return fmt.Errorf("stress.writers is required (must be positive)")
	}
	if s.Iterations <= 0 {
		return fmt.Errorf("stress.iterations is required (must be positive)")
	}
	if s.Resetters < 0 {
		return fmt.Errorf("invalid stress.resetters: %d (must not be negative)", s.Resetters)
	}
	if s.Readers < 0 {
		return fmt.Errorf("invalid stress.readers: %d (must not be negative)", s.Readers)
	}
	if s.Name == "" {
		return fmt.Errorf("stress.name is required")
	}
	return nil
}
