package main

import "github.com/satyammistari/sql2migration/cmd"

func main() {
	cmd.Execute()
}
