package main

import "traffic-classifier/cmd"

func main() {
	cmd.Execute()
}
