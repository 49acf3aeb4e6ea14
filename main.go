package main

import (
	"github.com/hoardcache/hoard/cmd"
)

func main() {
	cmd.Execute()
}
