package main

import "github.com/AntonZelenin/planetgen/internal/cmd"

func main() {
	cmd.Execute()
}
