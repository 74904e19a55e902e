// Command copybench benchmarks the ways of copying memory between fast local
// memory and cached external memory on a simulated platform.
package main

import "github.com/sarchlab/copybench/copybench/cmd"

func main() {
	cmd.Execute()
}
