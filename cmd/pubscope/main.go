package main

import "pubscope/cmd/handlers"

func main() {
	handlers.Execute()
}
