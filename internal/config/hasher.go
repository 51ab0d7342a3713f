package config

// Поддерживаемые алгоритмы хэширования паролей.
const (
	HasherArgon2id = "argon2id"
	HasherScrypt   = "scrypt"
)

// HasherConfig содержит параметры хэширования паролей.
type HasherConfig struct {
	Algorithm string `yaml:"algorithm" env:"TASKS_HASHER_ALGORITHM" env-default:"argon2id"`
	SaltBytes int    `yaml:"salt_bytes" env:"TASKS_HASHER_SALT_BYTES" env-default:"16"`
	KeyBytes  int    `yaml:"key_bytes" env:"TASKS_HASHER_KEY_BYTES" env-default:"32"`

	Argon2Time    uint32 `yaml:"argon2_time" env:"TASKS_ARGON2_TIME" env-default:"1"`
	Argon2Memory  uint32 `yaml:"argon2_memory_kib" env:"TASKS_ARGON2_MEMORY_KIB" env-default:"65536"`
	Argon2Threads uint8  `yaml:"argon2_threads" env:"TASKS_ARGON2_THREADS" env-default:"2"`

	ScryptN int `yaml:"scrypt_n" env:"TASKS_SCRYPT_N" env-default:"32768"`
	ScryptR int `yaml:"scrypt_r" env:"TASKS_SCRYPT_R" env-default:"8"`
	ScryptP int `yaml:"scrypt_p" env:"TASKS_SCRYPT_P" env-default:"1"`
}
