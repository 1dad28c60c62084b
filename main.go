package main

import "licensee-matcher/cmd"

func main() {
	cmd.Execute()
}
