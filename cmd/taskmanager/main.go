// Package main реализует точку входа командной строки taskmanager.
package main

import (
	"taskmanager/internal/cli"
)

func main() {
	cli.Execute()
}
