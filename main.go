package main

import "github.com/homedash/homedash-services/cmd"

func main() {
	cmd.Execute()
}
