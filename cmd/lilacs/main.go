package main

import "github.com/edp1096/lilacs/cmd/lilacs/cmd"

func main() {
	cmd.Execute()
}
