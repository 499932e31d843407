package main

import "github.com/oshokin/bike-alarm/cmd/bike-alarm/cmd"

func main() {
	cmd.Execute()
}
