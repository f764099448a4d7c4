package main

import "github.com/gaurav-prasanna/brochurepipe/cmd"

func main() {
	cmd.Execute()
}
