package config

// TracingConfig включает экспорт трассировок OpenTelemetry.
// Пустой Endpoint отключает экспорт.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint" env:"TASKS_OTEL_ENDPOINT" env-default:""`
	SampleRatio float64 `yaml:"sample_ratio" env:"TASKS_OTEL_SAMPLE_RATIO" env-default:"1"`
}
