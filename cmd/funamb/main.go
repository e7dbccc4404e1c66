// Command funamb runs programs of the nondeterministic evaluator.
package main

import "github.com/funvibe/funamb/pkg/cli"

func main() {
	cli.Run()
}
