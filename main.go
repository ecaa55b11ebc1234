package main

import "github.com/fahamena420/animeworld/cmd"

func main() {
	cmd.Execute()
}
