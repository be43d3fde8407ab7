// exopop curates the transiting exoplanet population from the NASA
// Exoplanet Archive.
package main

import (
	"os"

	"github.com/JonMunkholm/exopop/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
