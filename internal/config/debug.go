package config

import "os"

func IsDebug() bool {
	return os.Getenv("PARTSPRO_DEBUG") == "1"
}
