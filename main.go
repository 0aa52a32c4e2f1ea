package main

import "mesh-doctor/cmd"

func main() {
	cmd.Execute()
}
