// cmd/leo-content/main.go
package main

import (
	"leo/internal/appshell"
	"leo/internal/contentapp"
)

func main() { appshell.Main(contentapp.RunContext) }
