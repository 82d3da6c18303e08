// Command generate-report renders an HTML report from a CSV file.
package main

import (
	"csvreport/internal/cmd"
)

func main() {
	cmd.Execute()
}
