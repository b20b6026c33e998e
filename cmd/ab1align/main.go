// cmd/ab1align/main.go
package main

import (
	"ab1align/internal/app"
	"ab1align/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
