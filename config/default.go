package config

const DefaultPolicy = "conventional"

func GetDefault() Config {
	return Config{
		Backend:        BackendGit,
		TagPrefix:      "v",
		CompareURLBase: "https://github.com",
		Policy:         DefaultPolicy,
	}
}
