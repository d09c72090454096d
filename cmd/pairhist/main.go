// Command pairhist computes the pairwise distance histogram of a point file.
//
//	pairhist generate -n 100000 -o cells
//	pairhist run -t 8 -n 10000 -f cells
package main

import (
	"log"
	"os"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
