package main

import "github.com/mj1618/screen-bridge/cmd"

func main() {
	cmd.Execute()
}
