package main

import "github.com/saadjs/fitcoach-cli/cmd/fitcoach"

func main() {
	fitcoach.Execute()
}
