package main

import "github.com/f1stats/f1stats-go/cmd"

func main() {
	cmd.Execute()
}
