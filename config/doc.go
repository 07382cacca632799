/*
Package config loads handlestore configuration.

Configuration is read through viper: defaults, then an optional YAML file,
then HANDLESTORE_* environment variables (nested keys join with "_", so
handle_service.url is HANDLESTORE_HANDLE_SERVICE_URL), then any flags bound
to the viper returned by NewViper:

	prefix: "1234567"
	admin_username: "300:1234567/ADMIN"
	admin_password: "secret"
	base_url: "https://repository.example.org"
	alternate_host: ""          # optional, replaces base_url in target URLs
	use_alias: false
	backend: rest               # rest | dynamodb | mock
	handle_service:
	  url: "https://handle.example.org:8000"
	  timeout: 30s

Call LoadDotEnv first to pick up a .env file.
*/
package config
