package main

import "github.com/ssargent/bptreemap/cmd/bptreedemo/cmd"

func main() {
	cmd.Execute()
}
