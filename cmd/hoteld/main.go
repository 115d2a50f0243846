package main

import "github.com/iliyamo/hotel-reservation/cmd"

func main() {
	cmd.Execute()
}
