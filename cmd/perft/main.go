package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/aryavsaigal/rbcb/internal/model"
	"github.com/aryavsaigal/rbcb/internal/perft"
	"golang.org/x/exp/slices"
)

func main() {
	fen := flag.String("fen", model.StartFEN, "position to count from")
	depth := flag.Int("depth", 3, "perft depth")
	divide := flag.Bool("divide", false, "print the count under each root move")
	check := flag.Bool("check", false, "cross-check every node against dragontoothmg and goosemg")
	flag.Parse()

	pos, err := model.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	if *check {
		nodes, err := perft.CrossCheck(pos, *depth)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("cross-check ok: %d positions agree (%s)\n", nodes, time.Since(start).Round(time.Millisecond))
		return
	}

	if *divide {
		counts := perft.Divide(pos, *depth)
		moves := make([]string, 0, len(counts))
		total := 0
		for m, n := range counts {
			moves = append(moves, m)
			total += n
		}
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
		}
		fmt.Printf("\nnodes: %d (%s)\n", total, time.Since(start).Round(time.Millisecond))
		return
	}

	fmt.Printf("perft(%d) = %d (%s)\n", *depth, perft.Count(pos, *depth), time.Since(start).Round(time.Millisecond))
}
