package main

import "github.com/jsphweid/partwise/cmd"

func main() {
	cmd.Execute()
}
