package main

import "employees/cmd/client/cmd"

func main() {
	cmd.Execute()
}
