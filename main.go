package main

import "github.com/samsaffron/streammd/cmd"

func main() {
	cmd.Execute()
}
