// Copyright © 2018 The ELPS authors

package main

import "github.com/luthersystems/roots/cmd"

func main() {
	cmd.Execute()
}
