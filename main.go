package main

import "github.com/bluemanta7/MantaMind/cmd"

func main() {
	cmd.Execute()
}
