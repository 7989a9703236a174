package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"chessPro/bots"
	"chessPro/rules"
)

func main() {
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	depthFlag := flag.Int("depth", 3, "search depth in plies; ignored when -rating is set")
	ratingFlag := flag.Int("rating", -1, "pick the move as the rated bot would")
	backendFlag := flag.String("backend", string(rules.BackendDragon), "rules backend: notnil or dragon")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	terminals := flag.Bool("terminals", false, "score mate and stalemate instead of keeping the seed value")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	backend := rules.Backend(*backendFlag)
	pos, err := rules.Open(backend, *fenFlag)
	if err != nil {
		log.Fatal(err)
	}

	depth := *depthFlag
	if *ratingFlag >= 0 {
		strategy := bots.PolicyFor(*ratingFlag)
		if strategy == bots.StrategyRandom {
			fmt.Printf("rating %d plays random moves: %v\n", *ratingFlag, bots.MoveByRating(pos, *ratingFlag))
			return
		}
		depth = strategy.Depth()
	}

	fmt.Printf("searchbench: fen=%q backend=%s depth=%d repeat=%d eval=%d\n",
		pos.FEN(), backend, depth, *repeatFlag, bots.Evaluate(pos))

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		s := bots.NewSearcher()
		s.ScoreTerminals = *terminals

		iterStart := time.Now()
		best := s.BestMove(pos, depth)
		elapsed := time.Since(iterStart)

		nps := float64(s.Stats.Nodes) / elapsed.Seconds()
		fmt.Printf("iteration %d: bestmove %v  nodes=%d leaves=%d cutoffs=%d  time=%v  nps=%.0f\n",
			i+1, best, s.Stats.Nodes, s.Stats.Leaves, s.Stats.Cutoffs, elapsed, nps)
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))
}
