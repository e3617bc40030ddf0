// Command cachesim replays memory access traces through a simulated cache.
package main

import "github.com/sarchlab/cachesim/cachesim/cmd"

func main() {
	cmd.Execute()
}
