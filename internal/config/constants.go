package config

// Example values shipped in .env.example that must not reach production.
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleJWTSecret  = "generate_with_openssl_rand_hex_64"
)
