package constants

const TASK_TEMPLATE_DEPLOY string = "worker.template_deploy"

const REDIS_RENTAL_PREFIX = "RENTAL:"

// default advisory pricing bands, overridable in config.toml
const (
	DEFAULT_CPU_CORE_HOUR_MIN = 0.3
	DEFAULT_CPU_CORE_HOUR_MAX = 1.2
	DEFAULT_GPU_HOUR_MIN      = 6.0
	DEFAULT_GPU_HOUR_MAX      = 12.0
)
