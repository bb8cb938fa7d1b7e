package main

import "github.com/sqlitebrowser/scvs/cmd"

func main() {
	cmd.Execute()
}
