package main

import "github.com/blacktop/go-termpic/cmd/termpic/cmd"

func main() {
	cmd.Execute()
}
