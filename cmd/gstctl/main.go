// Command gstctl runs maintenance tasks against the invoicing database.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/gst-invoicing-api/cmd/gstctl/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: load .env: %v\n", err)
	}
	cmd.Execute()
}
