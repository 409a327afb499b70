// Program capcal generates the float24 constants and print table of the
// capacitance meter firmware.
package main

import (
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(Command().Execute())
}
