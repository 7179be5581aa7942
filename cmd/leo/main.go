// cmd/leo/main.go
package main

import (
	"leo/internal/app"
	"leo/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
