package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/dmarkov/fluidsort-server/internal/fluid"
)

var log = logrus.New()

var (
	check      bool
	listMoves  bool
	shuffle    bool
	colors     int
	containers int
	capacity   int
	seed       uint64
	logFile    string
)

func init() {
	flag.BoolVar(&check, "check", false, "run the solvability oracle on the puzzle")
	flag.BoolVar(&listMoves, "moves", false, "list legal pours")
	flag.BoolVar(&shuffle, "shuffle", false, "scramble the puzzle with random reverse moves")
	flag.IntVar(&colors, "colors", 0, "build a fresh solved layout with this many colors instead of reading input")
	flag.IntVar(&containers, "containers", 0, "container count for -colors (defaults to colors+1)")
	flag.IntVar(&capacity, "capacity", 4, "container capacity for -colors")
	flag.Uint64Var(&seed, "seed", 0, "shuffle seed (0 picks a random one)")
	flag.StringVar(&logFile, "logfile", "", "append logs to a rotating file")
}

func setupLogging() {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
}

func readState() *fluid.GameState {
	if colors > 0 {
		spares := containers - colors
		if spares <= 0 {
			spares = 1
		}
		return fluid.SolvedGameState(colors, spares, capacity)
	}

	in := os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal("unable to open puzzle file: ", err)
		}
		defer f.Close()
		in = f
	}
	text, err := io.ReadAll(in)
	if err != nil {
		log.Fatal("unable to read puzzle: ", err)
	}

	state := fluid.ParseGameState(string(text))
	if len(state.Containers) == 0 {
		log.Fatal("no containers in puzzle text")
	}
	return state
}

func main() {
	flag.Parse()
	setupLogging()

	state := readState()

	if shuffle {
		if seed == 0 {
			seed = new(maphash.Hash).Sum64()
		}
		r := rand.New(rand.NewPCG(seed, seed))
		applied := state.Shuffle(r)
		log.WithFields(logrus.Fields{
			"seed": seed, "moves": applied,
		}).Debug("shuffled")
	}

	if listMoves {
		for _, m := range state.PossibleMoves() {
			fmt.Printf("p %d %d\n", m.From, m.To)
		}
		return
	}

	if check {
		if state.IsSolvable() {
			fmt.Println("solvable")
		} else {
			fmt.Println("unsolvable")
			os.Exit(1)
		}
		return
	}

	fmt.Println(state)
}
