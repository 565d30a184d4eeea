package main

import "github.com/AAChaika/duotasks/cmd/duotasks/root"

func main() {
	root.Execute()
}
