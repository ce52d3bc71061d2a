package main

import "github.com/alexiusacademia/gostatics/cmd"

func main() {
	cmd.Execute()
}
