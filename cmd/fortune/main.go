package main

import "numerology_fortune_bot/internal/cli"

func main() {
	cli.Execute()
}
