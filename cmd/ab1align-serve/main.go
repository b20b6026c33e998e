// cmd/ab1align-serve/main.go
package main

import (
	"ab1align/internal/appshell"
	"ab1align/internal/serveapp"
)

func main() {
	appshell.Main(serveapp.RunContext)
}
