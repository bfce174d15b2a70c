package main

import "patron-import/cmd"

func main() {
	cmd.Execute()
}
