package main

import (
	"ZramManager/cmd"
	"ZramManager/internal/pkg/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
