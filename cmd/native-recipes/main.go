package main

import "native-recipes/internal/cli"

func main() {
	cli.Execute()
}
